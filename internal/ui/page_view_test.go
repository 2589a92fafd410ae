package ui

import (
	"errors"
	"strings"
	"testing"

	"pdfscope/internal/document"
	"pdfscope/internal/i18n"
	"pdfscope/internal/search"
)

func sampleLayer() document.Layer {
	return document.Layer{
		PageIndex: 0,
		Width:     120,
		Height:    60,
		Nodes: []document.Node{
			{Text: "the cat sat", Left: 0, Top: 0, Width: 66, Height: 12},
			{Text: "a dog", Left: 12, Top: 24, Width: 30, Height: 12},
		},
	}
}

func TestLayoutPage_Grid(t *testing.T) {
	g := layoutPage(sampleLayer(), nil)

	if g.cols != 20 || g.rows != 5 {
		t.Fatalf("Expected 20x5 grid, got %dx%d", g.cols, g.rows)
	}
	lines := g.plainLines()
	if !strings.HasPrefix(lines[0], "the cat sat") {
		t.Errorf("Expected first line to start with text, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "  a dog") {
		t.Errorf("Expected indented second node, got %q", lines[2])
	}
	if g.activeRow != -1 {
		t.Errorf("Expected no active row, got %d", g.activeRow)
	}
}

func TestLayoutPage_PaintsCoveredGlyphs(t *testing.T) {
	rects := []search.Rect{
		{Left: 24, Top: 0, Width: 18, Height: 12, ColorIndex: 0, Active: true},
		// 与激活矩形重叠的普通高亮
		{Left: 24, Top: 0, Width: 6, Height: 12, ColorIndex: 1},
		{Left: 24, Top: 24, Width: 18, Height: 12, ColorIndex: 1},
	}
	g := layoutPage(sampleLayer(), rects)

	for col := 0; col < 11; col++ {
		kind := g.cells[0][col].kind
		want := cellText
		if col >= 4 && col <= 6 {
			want = cellActive
		}
		if kind != want {
			t.Errorf("Cell 0,%d: expected kind %d, got %d", col, want, kind)
		}
	}
	if g.cells[0][4].color != 0 {
		t.Errorf("Expected active color to be kept, got %d", g.cells[0][4].color)
	}
	for col := 4; col <= 6; col++ {
		if g.cells[2][col].kind != cellHighlight {
			t.Errorf("Cell 2,%d: expected highlight, got %d", col, g.cells[2][col].kind)
		}
	}
	if g.activeRow != 0 {
		t.Errorf("Expected active row 0, got %d", g.activeRow)
	}
}

func TestPageView_States(t *testing.T) {
	i18n.SetLanguage(i18n.EN)
	v := NewPageView()
	v.SetSize(60, 10)

	v.SetLoading()
	if !strings.Contains(v.View(), "Loading...") {
		t.Error("Expected loading state")
	}

	v.SetLayer(document.Layer{PageIndex: 2}, errors.New("broken"))
	if v.HasLayerFor(2) {
		t.Error("Expected failed layer not to count")
	}
	if !strings.Contains(v.View(), "broken") {
		t.Error("Expected error state")
	}

	v.SetLayer(document.Layer{PageIndex: 2, Width: 60, Height: 24}, nil)
	if !v.HasLayerFor(2) || v.HasLayerFor(1) {
		t.Error("Expected layer for page index 2 only")
	}
	if !strings.Contains(v.View(), "No text on this page") {
		t.Error("Expected empty page hint")
	}

	v.Reset()
	if _, ok := v.Layer(); ok {
		t.Error("Expected reset to drop layer")
	}
}

func TestPageView_CenterActive(t *testing.T) {
	v := NewPageView()
	v.SetSize(60, 4)

	layer := document.Layer{PageIndex: 0, Width: 60, Height: 240}
	for i := 0; i < 20; i++ {
		layer.Nodes = append(layer.Nodes, document.Node{
			Text: "line", Left: 0, Top: float64(i) * 12, Width: 24, Height: 12,
		})
	}
	v.SetLayer(layer, nil)
	if v.CenterActive() {
		t.Error("Expected no active match to center")
	}

	v.SetHighlights(search.PageHighlights{
		PageIndex: 0,
		Rects:     []search.Rect{{Left: 0, Top: 120, Width: 24, Height: 12, Active: true}},
	})
	if !v.CenterActive() {
		t.Fatal("Expected active match to be centered")
	}
	if v.ActiveRow() != 10 {
		t.Errorf("Expected active row 10, got %d", v.ActiveRow())
	}
	if v.viewport.YOffset != 9 {
		t.Errorf("Expected offset 9, got %d", v.viewport.YOffset)
	}
}
