package document

import (
	"context"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Run 是从内容流中合并出的一段连续文本（PDF 坐标，原点在左下角）
type Run struct {
	Text     string
	Font     string
	FontSize float64
	X        float64 // 起点横坐标
	Y        float64 // 基线纵坐标
	W        float64 // 宽度
}

// Node 是文本层上的一个文本节点（像素坐标，原点在页面左上角，已乘缩放比例）
type Node struct {
	Text   string
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Layer 是一页的文本层
type Layer struct {
	PageIndex int
	Width     float64
	Height    float64
	Nodes     []Node
}

const (
	// 同一行判定：基线偏差不超过字号的比例
	baselineTolerance = 0.2
	// 两个字形间距超过该比例时补一个空格
	spaceGapRatio = 0.15
	// 间距超过该比例时另起一段
	breakGapRatio = 1.0
)

// TextLayer 返回某一页在给定缩放比例下的文本层
func (d *Document) TextLayer(ctx context.Context, pageIndex int, scale float64) (Layer, error) {
	runs, err := d.TextRuns(ctx, pageIndex)
	if err != nil {
		return Layer{PageIndex: pageIndex}, err
	}
	width, height := d.PageSize(pageIndex)
	return BuildLayer(pageIndex, width, height, runs, scale), nil
}

// BuildLayer 把文本段换算为左上角原点的节点几何
func BuildLayer(pageIndex int, width, height float64, runs []Run, scale float64) Layer {
	if scale <= 0 {
		scale = 1
	}
	layer := Layer{
		PageIndex: pageIndex,
		Width:     width * scale,
		Height:    height * scale,
		Nodes:     make([]Node, 0, len(runs)),
	}
	for _, r := range runs {
		size := r.FontSize
		if size <= 0 {
			size = 1
		}
		top := height - r.Y - size
		if top < 0 {
			top = 0
		}
		layer.Nodes = append(layer.Nodes, Node{
			Text:   r.Text,
			Left:   r.X * scale,
			Top:    top * scale,
			Width:  r.W * scale,
			Height: size * scale,
		})
	}
	return layer
}

// groupRuns 把逐字形输出合并为文本段
func groupRuns(glyphs []pdf.Text) []Run {
	var runs []Run
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if n := len(runs); n > 0 && continues(runs[n-1], g) {
			r := &runs[n-1]
			gap := g.X - (r.X + r.W)
			if gap > unit(r.FontSize)*spaceGapRatio &&
				!strings.HasSuffix(r.Text, " ") && !strings.HasPrefix(g.S, " ") {
				r.Text += " "
			}
			r.Text += g.S
			if end := g.X + g.W; end > r.X+r.W {
				r.W = end - r.X
			}
			continue
		}
		runs = append(runs, Run{
			Text:     g.S,
			Font:     g.Font,
			FontSize: g.FontSize,
			X:        g.X,
			Y:        g.Y,
			W:        g.W,
		})
	}

	out := runs[:0]
	for _, r := range runs {
		if strings.TrimSpace(r.Text) != "" {
			out = append(out, r)
		}
	}
	return out
}

// continues 判断字形 g 是否接在文本段 r 之后
func continues(r Run, g pdf.Text) bool {
	if g.Font != r.Font || math.Abs(g.FontSize-r.FontSize) > 0.01 {
		return false
	}
	u := unit(r.FontSize)
	if math.Abs(g.Y-r.Y) > u*baselineTolerance {
		return false
	}
	gap := g.X - (r.X + r.W)
	return gap > -u*0.5 && gap < u*breakGapRatio
}

func unit(fontSize float64) float64 {
	if fontSize < 1 {
		return 1
	}
	return fontSize
}
