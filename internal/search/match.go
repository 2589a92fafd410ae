// Package search 实现多关键词搜索、高亮几何计算与结果合并
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NoActiveMatch 表示当前没有激活的匹配
const NoActiveMatch = -1

// Match 表示一次关键词出现
// 身份由位置决定（页 + 页内序号），每次重新计算时整体替换
type Match struct {
	PageIndex  int    // 页索引（0-based）
	MatchIndex int    // 页内序号，同一页内唯一
	Text       string // 匹配到的原文
	TermIndex  int    // 对应关键词在词表中的位置
}

// SameIdentity 判断两个匹配是否指向同一位置
func (m Match) SameIdentity(o Match) bool {
	return m.PageIndex == o.PageIndex && m.MatchIndex == o.MatchIndex
}

// InRange 判断索引能否安全解引用
func InRange(matches []Match, index int) bool {
	return index >= 0 && index < len(matches)
}

// ParseTerms 把查询串拆成词表：按逗号分割、去空白、小写、丢弃空项，保持顺序
func ParseTerms(query string) []string {
	parts := strings.Split(query, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := fold(strings.TrimSpace(p)); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// normalize 统一为 NFC，避免组合字符导致漏匹配
func normalize(s string) string {
	return norm.NFC.String(s)
}

// fold 逐字符转小写，保证字符数不变（高亮偏移按字符计算）
func fold(s string) string {
	return strings.Map(unicode.ToLower, normalize(s))
}

// occurrence 是一次出现在节点文本中的位置（字符单位）
type occurrence struct {
	start  int
	length int
}

// findAll 返回 term 在 folded 中所有不重叠出现的位置
func findAll(folded, term string) []occurrence {
	if term == "" {
		return nil
	}
	termLen := utf8.RuneCountInString(term)

	var out []occurrence
	offset := 0
	for offset <= len(folded) {
		i := strings.Index(folded[offset:], term)
		if i < 0 {
			break
		}
		pos := offset + i
		out = append(out, occurrence{
			start:  utf8.RuneCountInString(folded[:pos]),
			length: termLen,
		})
		offset = pos + len(term)
	}
	return out
}

// visit 按扫描顺序遍历一页的所有出现：节点 → 关键词 → 位置
// 搜索引擎与高亮渲染共用这一遍历，保证两者产生的匹配身份一致
func visit(pageIndex int, texts []string, terms []string, fn func(node int, occ occurrence, m Match)) {
	matchIndex := 0
	for nodeIdx, text := range texts {
		original := []rune(normalize(text))
		folded := fold(text)
		for termIdx, term := range terms {
			for _, occ := range findAll(folded, term) {
				end := occ.start + occ.length
				if end > len(original) {
					end = len(original)
				}
				fn(nodeIdx, occ, Match{
					PageIndex:  pageIndex,
					MatchIndex: matchIndex,
					Text:       string(original[occ.start:end]),
					TermIndex:  termIdx,
				})
				matchIndex++
			}
		}
	}
}
