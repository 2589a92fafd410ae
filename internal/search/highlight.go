package search

import (
	"pdfscope/internal/document"
)

// Palette 各关键词的高亮颜色，按 termIndex 取模选色
var Palette = []string{
	"#FFFF99", // 黄
	"#99FF99", // 绿
	"#FF9999", // 红
	"#99FFFF", // 青
	"#FF99FF", // 品红
	"#FFD27F", // 橙
	"#C080C0", // 紫
	"#80C080", // 深绿
}

// ActivePalette 当前激活匹配使用的颜色，与 Palette 一一对应
var ActivePalette = []string{
	"#FFFF00",
	"#00FF00",
	"#FF0000",
	"#00FFFF",
	"#FF00FF",
	"#FFA500",
	"#800080",
	"#008000",
}

// ColorIndex 返回关键词对应的调色板下标，只取决于 termIndex
func ColorIndex(termIndex int) int {
	n := len(Palette)
	return ((termIndex % n) + n) % n
}

// Rect 是一个高亮矩形，坐标相对于文本层左上角
type Rect struct {
	Match      Match
	Left       float64
	Top        float64
	Width      float64
	Height     float64
	ColorIndex int
	Active     bool
}

// PageHighlights 是一页的高亮计算结果
type PageHighlights struct {
	PageIndex int
	Rects     []Rect
	Matches   []Match
}

// Active 返回激活的高亮矩形（若在本页）
func (h PageHighlights) Active() (Rect, bool) {
	for _, r := range h.Rects {
		if r.Active {
			return r, true
		}
	}
	return Rect{}, false
}

// Highlight 重新计算一页的高亮矩形
// 字符宽度按节点宽度 / 字符数均分估算，不使用真实字体度量。
// global 与 activeIndex 用来判断哪个矩形是当前激活的匹配。
func Highlight(layer document.Layer, terms []string, global []Match, activeIndex int) PageHighlights {
	result := PageHighlights{PageIndex: layer.PageIndex}
	if len(terms) == 0 {
		return result
	}

	var active Match
	hasActive := InRange(global, activeIndex)
	if hasActive {
		active = global[activeIndex]
	}

	visit(layer.PageIndex, nodeTexts(layer.Nodes), terms, func(nodeIdx int, occ occurrence, m Match) {
		node := layer.Nodes[nodeIdx]
		charWidth := 0.0
		if n := len([]rune(normalize(node.Text))); n > 0 {
			charWidth = node.Width / float64(n)
		}

		result.Rects = append(result.Rects, Rect{
			Match:      m,
			Left:       node.Left + float64(occ.start)*charWidth,
			Top:        node.Top,
			Width:      float64(occ.length) * charWidth,
			Height:     node.Height,
			ColorIndex: ColorIndex(m.TermIndex),
			Active:     hasActive && active.SameIdentity(m),
		})
		result.Matches = append(result.Matches, m)
	})

	return result
}

// Merge 用本页新算出的匹配替换全局列表中该页的部分，其余页保持不变
// 本页结果与原来完全一致时返回 changed=false，调用方不应写回状态。
func Merge(global []Match, pageIndex int, page []Match) ([]Match, bool) {
	var before, current, after []Match
	for _, m := range global {
		switch {
		case m.PageIndex < pageIndex:
			before = append(before, m)
		case m.PageIndex == pageIndex:
			current = append(current, m)
		default:
			after = append(after, m)
		}
	}

	if equalMatches(current, page) {
		return global, false
	}

	merged := make([]Match, 0, len(before)+len(page)+len(after))
	merged = append(merged, before...)
	merged = append(merged, page...)
	merged = append(merged, after...)
	return merged, true
}

func equalMatches(a, b []Match) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
