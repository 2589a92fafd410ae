package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/unicode/norm"

	"pdfscope/internal/document"
	"pdfscope/internal/i18n"
	"pdfscope/internal/search"
	"pdfscope/internal/ui/styles"
)

// 终端字符格对应的页面点数（已缩放坐标）
const (
	cellWidth  = 6.0
	cellHeight = 12.0
)

type cellKind uint8

const (
	cellBlank cellKind = iota
	cellText
	cellHighlight
	cellActive
)

type cell struct {
	r     rune
	kind  cellKind
	color int
	// 字形中心点，用于与高亮矩形做命中测试
	cx, cy float64
}

// pageGrid 是一页文本层在字符格上的排版结果
type pageGrid struct {
	cols, rows int
	cells      [][]cell
	activeRow  int // 激活匹配所在行，-1 表示不在本页
}

// layoutPage 把文本节点排到字符格上，再把高亮矩形涂到被覆盖的字形上
// 每个字形宽度按节点宽度均分，与高亮矩形的估算方式一致。
func layoutPage(layer document.Layer, rects []search.Rect) pageGrid {
	g := pageGrid{
		cols:      int(math.Max(1, math.Ceil(layer.Width/cellWidth))),
		rows:      int(math.Max(1, math.Ceil(layer.Height/cellHeight))),
		activeRow: -1,
	}
	g.cells = make([][]cell, g.rows)
	for i := range g.cells {
		row := make([]cell, g.cols)
		for j := range row {
			row[j] = cell{r: ' '}
		}
		g.cells[i] = row
	}

	for _, node := range layer.Nodes {
		runes := []rune(norm.NFC.String(node.Text))
		if len(runes) == 0 {
			continue
		}
		charWidth := node.Width / float64(len(runes))
		row := clampInt(int(node.Top/cellHeight), 0, g.rows-1)
		col0 := int(math.Round(node.Left / cellWidth))
		for k, r := range runes {
			col := col0 + k
			if col < 0 || col >= g.cols {
				continue
			}
			g.cells[row][col] = cell{
				r:    r,
				kind: cellText,
				cx:   node.Left + (float64(k)+0.5)*charWidth,
				cy:   node.Top + node.Height/2,
			}
		}
	}

	for _, rect := range rects {
		g.paint(rect)
	}
	return g
}

func (g *pageGrid) paint(rect search.Rect) {
	from := clampInt(int(rect.Top/cellHeight), 0, g.rows-1)
	to := clampInt(int((rect.Top+rect.Height)/cellHeight), 0, g.rows-1)
	kind := cellHighlight
	if rect.Active {
		kind = cellActive
	}

	for row := from; row <= to; row++ {
		for col := range g.cells[row] {
			c := &g.cells[row][col]
			if c.kind == cellBlank {
				continue
			}
			if c.cx < rect.Left || c.cx >= rect.Left+rect.Width {
				continue
			}
			if c.cy < rect.Top || c.cy >= rect.Top+rect.Height {
				continue
			}
			// 激活高亮优先，不被普通高亮覆盖
			if c.kind == cellActive && kind != cellActive {
				continue
			}
			c.kind = kind
			c.color = rect.ColorIndex
			if rect.Active && g.activeRow < 0 {
				g.activeRow = row
			}
		}
	}
}

// plainLines 返回不带样式的文本行，测试和打印模式使用
func (g pageGrid) plainLines() []string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.r)
		}
		lines[i] = b.String()
	}
	return lines
}

// render 把相同样式的连续字符合并后交给 lipgloss 渲染
func (g pageGrid) render() string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		var b strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameStyle(row[j], row[start]) {
				continue
			}
			b.WriteString(renderSegment(row[start:j]))
			start = j
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	if a.kind == cellHighlight || a.kind == cellActive || b.kind == cellHighlight || b.kind == cellActive {
		return a.kind == b.kind && a.color == b.color
	}
	return true
}

func renderSegment(seg []cell) string {
	runes := make([]rune, len(seg))
	for i, c := range seg {
		runes[i] = c.r
	}
	text := string(runes)
	switch seg[0].kind {
	case cellHighlight:
		return styles.HighlightStyle(seg[0].color, false).Render(text)
	case cellActive:
		return styles.HighlightStyle(seg[0].color, true).Render(text)
	default:
		return text
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PageView 页面视图：把当前页的文本层和高亮渲染进可滚动的视口
type PageView struct {
	viewport   viewport.Model
	layer      document.Layer
	hasLayer   bool
	highlights search.PageHighlights
	grid       pageGrid
	loading    bool
	err        error

	width  int
	height int
}

// NewPageView 创建页面视图
func NewPageView() *PageView {
	return &PageView{
		viewport: viewport.New(80, 20),
		grid:     pageGrid{activeRow: -1},
	}
}

// SetSize 设置视图尺寸
func (v *PageView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
	if v.viewport.Height < 3 {
		v.viewport.Height = 3
	}
}

// SetLoading 标记当前页正在提取文本
func (v *PageView) SetLoading() {
	v.loading = true
	v.err = nil
}

// SetLayer 设置新文本层，清空旧高亮
func (v *PageView) SetLayer(layer document.Layer, err error) {
	v.loading = false
	v.err = err
	v.layer = layer
	v.hasLayer = err == nil
	v.highlights = search.PageHighlights{PageIndex: layer.PageIndex}
	v.rebuild()
}

// Reset 清空页面（切换文档时）
func (v *PageView) Reset() {
	v.layer = document.Layer{}
	v.hasLayer = false
	v.loading = false
	v.err = nil
	v.highlights = search.PageHighlights{}
	v.grid = pageGrid{activeRow: -1}
	v.viewport.SetContent("")
	v.viewport.GotoTop()
}

// Layer 返回当前文本层
func (v *PageView) Layer() (document.Layer, bool) {
	return v.layer, v.hasLayer
}

// HasLayerFor 当前文本层是否属于给定页（0-based）
func (v *PageView) HasLayerFor(pageIndex int) bool {
	return v.hasLayer && v.layer.PageIndex == pageIndex
}

// SetHighlights 应用高亮并重绘
func (v *PageView) SetHighlights(h search.PageHighlights) {
	v.highlights = h
	v.rebuild()
}

// Highlights 返回当前页的高亮
func (v *PageView) Highlights() search.PageHighlights {
	return v.highlights
}

func (v *PageView) rebuild() {
	if !v.hasLayer {
		v.grid = pageGrid{activeRow: -1}
		v.viewport.SetContent("")
		return
	}
	v.grid = layoutPage(v.layer, v.highlights.Rects)
	v.viewport.SetContent(styles.PageStyle.Render(v.grid.render()))
}

// CenterActive 把激活匹配所在行滚动到视口中央，激活匹配不在本页时返回 false
func (v *PageView) CenterActive() bool {
	if v.grid.activeRow < 0 {
		return false
	}
	// +1 为页面上边框
	offset := v.grid.activeRow + 1 - v.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	v.viewport.SetYOffset(offset)
	return true
}

// ActiveRow 激活匹配所在的字符行
func (v *PageView) ActiveRow() int {
	return v.grid.activeRow
}

// Update 处理滚动
func (v *PageView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// View 渲染页面
func (v *PageView) View() string {
	switch {
	case v.loading:
		return v.renderState(styles.MutedStyle.Render("⏳ " + i18n.T("loading")))
	case v.err != nil:
		return v.renderState(styles.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", i18n.T("error"), v.err)))
	case !v.hasLayer:
		return v.renderState("")
	}

	view := v.viewport.View()
	if len(v.layer.Nodes) == 0 {
		view = styles.HintStyle.Render(i18n.T("no_text_on_page")) + "\n" + view
	}
	return view
}

func (v *PageView) renderState(content string) string {
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
}
