package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"pdfscope/internal/document"
	"pdfscope/internal/search"
)

// 打印模式的输出格式
const (
	formatText = "text"
	formatYAML = "yaml"
)

// matchReport 是 yaml 格式的输出结构
type matchReport struct {
	File    string        `yaml:"file"`
	Size    int64         `yaml:"size"`
	Pages   int           `yaml:"pages"`
	Query   string        `yaml:"query"`
	Terms   []string      `yaml:"terms"`
	Matches []matchRecord `yaml:"matches"`
}

type matchRecord struct {
	Page  int    `yaml:"page"`
	Match int    `yaml:"match"`
	Term  string `yaml:"term"`
	Text  string `yaml:"text"`
}

// printMatches 非交互模式：扫描整个文档并输出匹配
func printMatches(ctx context.Context, w io.Writer, logger *log.Logger, path, query, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Printf("print %s query=%q format=%s", path, query, format)
	doc, err := document.Open(path)
	if err != nil {
		logger.Printf("load %s: %v", path, err)
		return fmt.Errorf("error loading PDF: %w", err)
	}

	terms := search.ParseTerms(query)
	var matches []search.Match
	if len(terms) > 0 {
		engine := search.NewEngine(logger)
		matches, err = engine.Scan(ctx, doc, query, nil)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if format == formatYAML {
		return writeReport(w, buildReport(doc, query, terms, matches))
	}

	fmt.Fprintf(w, "%s (%s, %d pages)\n", doc.Name(), humanize.Bytes(uint64(doc.Size())), doc.NumPages())
	if len(terms) == 0 {
		return nil
	}
	return writeMatches(w, terms, matches)
}

func termOf(terms []string, m search.Match) string {
	if m.TermIndex >= 0 && m.TermIndex < len(terms) {
		return terms[m.TermIndex]
	}
	return ""
}

func writeMatches(w io.Writer, terms []string, matches []search.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matches found")
		return err
	}

	fmt.Fprintf(w, "%s results\n", humanize.Comma(int64(len(matches))))
	for i, m := range matches {
		if _, err := fmt.Fprintf(w, "%d\tPage %d\tMatch %d\t[%s]\t%s\n",
			i+1, m.PageIndex+1, m.MatchIndex+1, termOf(terms, m), m.Text); err != nil {
			return err
		}
	}
	return nil
}

func buildReport(doc *document.Document, query string, terms []string, matches []search.Match) matchReport {
	report := matchReport{
		Query:   query,
		Terms:   terms,
		Matches: make([]matchRecord, 0, len(matches)),
	}
	if doc != nil {
		report.File = doc.Name()
		report.Size = doc.Size()
		report.Pages = doc.NumPages()
	}
	for _, m := range matches {
		report.Matches = append(report.Matches, matchRecord{
			Page:  m.PageIndex + 1,
			Match: m.MatchIndex + 1,
			Term:  termOf(terms, m),
			Text:  m.Text,
		})
	}
	return report
}

func writeReport(w io.Writer, report matchReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
