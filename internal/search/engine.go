package search

import (
	"context"
	"log"

	"pdfscope/internal/document"
)

// TextSource 是搜索引擎依赖的文本提取能力（*document.Document 实现了它）
type TextSource interface {
	NumPages() int
	TextRuns(ctx context.Context, pageIndex int) ([]document.Run, error)
}

// ProgressFunc 报告已扫描页数
type ProgressFunc func(done, total int)

// Engine 逐页线性扫描文档文本
type Engine struct {
	logger *log.Logger
}

// NewEngine 创建搜索引擎，logger 为空时使用标准库默认 logger
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{logger: logger}
}

// Scan 在整个文档中查找所有关键词出现
// 查询为空或没有文档时返回空结果；单页提取失败只记录日志，不中断扫描。
// ctx 被取消时返回已找到的结果和 ctx 的错误。
func (e *Engine) Scan(ctx context.Context, src TextSource, query string, progress ProgressFunc) ([]Match, error) {
	terms := ParseTerms(query)
	if len(terms) == 0 || src == nil {
		return []Match{}, nil
	}

	total := src.NumPages()
	matches := make([]Match, 0)

	for pageIndex := 0; pageIndex < total; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return matches, err
		}

		runs, err := src.TextRuns(ctx, pageIndex)
		if err != nil {
			if ctx.Err() != nil {
				return matches, ctx.Err()
			}
			e.logger.Printf("search: skip page %d: %v", pageIndex+1, err)
		} else {
			visit(pageIndex, runTexts(runs), terms, func(_ int, _ occurrence, m Match) {
				matches = append(matches, m)
			})
		}

		if progress != nil {
			progress(pageIndex+1, total)
		}
	}

	return matches, nil
}

func runTexts(runs []document.Run) []string {
	texts := make([]string, len(runs))
	for i, r := range runs {
		texts[i] = r.Text
	}
	return texts
}

func nodeTexts(nodes []document.Node) []string {
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = n.Text
	}
	return texts
}
