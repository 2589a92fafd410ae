package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pdfscope/internal/config"
	"pdfscope/internal/document"
	"pdfscope/internal/i18n"
	"pdfscope/internal/search"
	"pdfscope/internal/task"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	i18n.SetLanguage(i18n.EN)
	m := NewModel(Options{
		Config: &config.Config{
			SearchDebounce: config.DefaultDebounce,
			StatePath:      filepath.Join(t.TempDir(), "prefs.toml"),
		},
		Manager: task.NewManager(),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	t.Cleanup(func() { m.quit() })
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleMatches() []search.Match {
	return []search.Match{
		{PageIndex: 0, MatchIndex: 0, Text: "cat", TermIndex: 0},
		{PageIndex: 2, MatchIndex: 0, Text: "dog", TermIndex: 1},
	}
}

func TestScanResult_StaleIsDiscarded(t *testing.T) {
	m := newTestModel(t)

	stale := m.seq.Next()
	latest := m.seq.Next()

	m.Update(scanResultMsg{seq: stale, query: "cat", matches: sampleMatches()})
	if m.store.MatchCount() != 0 {
		t.Fatalf("Expected stale result to be dropped, got %d matches", m.store.MatchCount())
	}

	m.Update(scanResultMsg{seq: latest, query: "cat, dog", matches: sampleMatches()})
	if m.store.MatchCount() != 2 {
		t.Fatalf("Expected 2 matches, got %d", m.store.MatchCount())
	}
	if m.store.ActiveIndex() != 0 {
		t.Errorf("Expected first match active, got %d", m.store.ActiveIndex())
	}
	if m.store.CurrentPage() != 1 {
		t.Errorf("Expected page 1, got %d", m.store.CurrentPage())
	}
}

func TestScanResult_Cancelled(t *testing.T) {
	m := newTestModel(t)
	seq := m.seq.Next()

	m.Update(scanResultMsg{seq: seq, matches: sampleMatches(), cancelled: true})
	if m.store.MatchCount() != 0 {
		t.Errorf("Expected cancelled scan to be ignored, got %d matches", m.store.MatchCount())
	}
}

func TestScanResult_ErrorShowsDialog(t *testing.T) {
	m := newTestModel(t)
	seq := m.seq.Next()

	m.Update(scanResultMsg{seq: seq, err: errors.New("boom")})
	if !m.errDialog.IsVisible() {
		t.Fatal("Expected error dialog to be visible")
	}
	// 弹窗吞掉按键，Esc 关闭
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.errDialog.IsVisible() {
		t.Error("Expected Esc to close the dialog")
	}
}

func TestDebounce_OnlyLatestCommits(t *testing.T) {
	m := newTestModel(t)

	old := m.seq.Next()
	latest := m.seq.Next()

	m.Update(searchDebounceMsg{seq: old, query: "cat"})
	if m.store.SearchQuery() != "" {
		t.Errorf("Expected stale debounce to be ignored, got query %q", m.store.SearchQuery())
	}

	m.Update(searchDebounceMsg{seq: latest, query: "dog"})
	if m.store.SearchQuery() != "dog" {
		t.Errorf("Expected query dog, got %q", m.store.SearchQuery())
	}
	// 没有文档时不会启动扫描
	if m.searching {
		t.Error("Expected no scan without a document")
	}
}

func TestDebounce_EmptyQueryReturnsToFirstPage(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(5)
	m.store.SetSearchQuery("cat, dog")
	m.Update(scanResultMsg{seq: m.seq.Next(), matches: sampleMatches()})
	m.Update(keyRunes("n"))
	if m.store.CurrentPage() != 3 || m.store.ActiveIndex() != 1 {
		t.Fatalf("Expected match 1 on page 3, got %d on page %d", m.store.ActiveIndex(), m.store.CurrentPage())
	}

	m.Update(searchDebounceMsg{seq: m.seq.Next(), query: "  "})
	if m.store.CurrentPage() != 1 {
		t.Errorf("Expected page 1 after clearing query, got %d", m.store.CurrentPage())
	}
	if m.store.MatchCount() != 0 || m.store.ActiveIndex() != search.NoActiveMatch {
		t.Errorf("Expected no matches, got count=%d active=%d", m.store.MatchCount(), m.store.ActiveIndex())
	}
	if m.store.SearchQuery() != "" {
		t.Errorf("Expected empty query, got %q", m.store.SearchQuery())
	}
}

func TestSearchKeys_EnterOnBlankQueryReturnsToFirstPage(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(5)
	m.Update(scanResultMsg{seq: m.seq.Next(), matches: sampleMatches()})
	m.Update(keyRunes("]"))
	m.Update(keyRunes("]"))

	m.Update(keyRunes("/"))
	m.sidebar.SetQuery(" , ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.store.CurrentPage() != 1 || m.store.MatchCount() != 0 {
		t.Errorf("Expected page 1 with no matches, got page=%d count=%d", m.store.CurrentPage(), m.store.MatchCount())
	}
	if m.mode != modeNormal {
		t.Errorf("Expected normal mode after enter, got %d", m.mode)
	}
}

func TestSearchKeys_TypingRestartsDebounce(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)

	m.Update(keyRunes("/"))
	if m.mode != modeSearch {
		t.Fatalf("Expected search mode, got %d", m.mode)
	}

	before := m.seq.Latest()
	m.Update(keyRunes("c"))
	m.Update(keyRunes("a"))
	if m.seq.Latest() != before+2 {
		t.Errorf("Expected two new sequence numbers, got %d -> %d", before, m.seq.Latest())
	}
	if m.sidebar.Query() != "ca" {
		t.Errorf("Expected input ca, got %q", m.sidebar.Query())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeNormal || m.sidebar.Query() != "" || m.store.SearchQuery() != "" {
		t.Errorf("Expected cleared search, got mode=%d input=%q query=%q", m.mode, m.sidebar.Query(), m.store.SearchQuery())
	}
}

func TestMatchNavigationKeys(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)
	m.Update(scanResultMsg{seq: m.seq.Next(), matches: sampleMatches()})

	m.Update(keyRunes("n"))
	if m.store.ActiveIndex() != 1 || m.store.CurrentPage() != 3 {
		t.Errorf("Expected match 1 on page 3, got %d on page %d", m.store.ActiveIndex(), m.store.CurrentPage())
	}

	// 末尾回绕
	m.Update(tea.KeyMsg{Type: tea.KeyF3})
	if m.store.ActiveIndex() != 0 {
		t.Errorf("Expected wraparound to 0, got %d", m.store.ActiveIndex())
	}

	m.Update(keyRunes("N"))
	if m.store.ActiveIndex() != 1 {
		t.Errorf("Expected prev wraparound to 1, got %d", m.store.ActiveIndex())
	}

	// Esc 清空后回到第 1 页
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.store.MatchCount() != 0 || m.store.ActiveIndex() != search.NoActiveMatch || m.store.CurrentPage() != 1 {
		t.Errorf("Expected cleared state, got count=%d active=%d page=%d",
			m.store.MatchCount(), m.store.ActiveIndex(), m.store.CurrentPage())
	}
}

func TestResultListSelect(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)
	m.Update(scanResultMsg{seq: m.seq.Next(), matches: sampleMatches()})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeResults {
		t.Fatalf("Expected results mode, got %d", m.mode)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.store.ActiveIndex() != 1 {
		t.Errorf("Expected second match selected, got %d", m.store.ActiveIndex())
	}
}

func TestPageAndZoomKeys(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)

	m.Update(keyRunes("]"))
	m.Update(keyRunes("]"))
	m.Update(keyRunes("]"))
	if m.store.CurrentPage() != 3 {
		t.Errorf("Expected page 3, got %d", m.store.CurrentPage())
	}
	m.Update(keyRunes("["))
	if m.store.CurrentPage() != 2 {
		t.Errorf("Expected page 2, got %d", m.store.CurrentPage())
	}

	m.Update(keyRunes("+"))
	m.Update(keyRunes("+"))
	if m.store.Scale() != 1.0 {
		t.Errorf("Expected scale clamped to 1.0, got %v", m.store.Scale())
	}
	for i := 0; i < 5; i++ {
		m.Update(keyRunes("-"))
	}
	if m.store.Scale() != 0.7 {
		t.Errorf("Expected scale clamped to 0.7, got %v", m.store.Scale())
	}
	m.Update(keyRunes("0"))
	if m.store.Scale() != 0.9 {
		t.Errorf("Expected reset scale 0.9, got %v", m.store.Scale())
	}
	if m.prefs.Scale != 0.9 {
		t.Errorf("Expected prefs to follow scale, got %v", m.prefs.Scale)
	}
}

func TestPageInput(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)

	m.Update(keyRunes(":"))
	if m.mode != modePageInput {
		t.Fatalf("Expected page input mode, got %d", m.mode)
	}
	m.controls.pageInput.SetValue("99")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.store.CurrentPage() != 1 {
		t.Errorf("Expected page to stay 1, got %d", m.store.CurrentPage())
	}
	if !m.controls.rejected {
		t.Error("Expected input to be marked rejected")
	}

	m.Update(keyRunes(":"))
	m.controls.pageInput.SetValue("2")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.store.CurrentPage() != 2 {
		t.Errorf("Expected page 2, got %d", m.store.CurrentPage())
	}
}

func TestKeysIgnoredWithoutDocument(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRunes("]"))
	m.Update(keyRunes("+"))
	if m.store.CurrentPage() != 1 || m.store.Scale() != 0.9 {
		t.Errorf("Expected no change without document, got page=%d scale=%v", m.store.CurrentPage(), m.store.Scale())
	}
}

func TestLayer_HighlightsAndMerge(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)
	m.store.SetSearchQuery("cat")
	// 全局列表只有第 2 页的匹配，第 1 页的文本层会补上本页匹配
	m.store.SetMatches([]search.Match{{PageIndex: 1, MatchIndex: 0, Text: "cat", TermIndex: 0}})

	layer := document.Layer{
		PageIndex: 0,
		Width:     120,
		Height:    60,
		Nodes: []document.Node{
			{Text: "the cat sat", Left: 0, Top: 0, Width: 66, Height: 12},
		},
	}
	m.Update(layerMsg{page: 1, scale: m.store.Scale(), layer: layer})

	if len(m.page.Highlights().Rects) != 1 {
		t.Fatalf("Expected 1 highlight rect, got %d", len(m.page.Highlights().Rects))
	}
	matches := m.store.Matches()
	if len(matches) != 2 || matches[0].PageIndex != 0 || matches[1].PageIndex != 1 {
		t.Errorf("Expected merged matches ordered by page, got %+v", matches)
	}

	// 激活本页匹配后矩形标记为激活
	m.Update(keyRunes("n"))
	if m.store.ActiveIndex() != 0 {
		t.Fatalf("Expected active 0, got %d", m.store.ActiveIndex())
	}
	if _, ok := m.page.Highlights().Active(); !ok {
		t.Error("Expected active rect on current page")
	}
	if m.page.ActiveRow() != 0 {
		t.Errorf("Expected active row 0, got %d", m.page.ActiveRow())
	}
}

func TestLayer_StaleIgnored(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)

	m.Update(layerMsg{page: 2, scale: m.store.Scale(), layer: document.Layer{PageIndex: 1}})
	if _, ok := m.page.Layer(); ok {
		t.Error("Expected layer for another page to be ignored")
	}

	m.Update(layerMsg{page: 1, scale: 0.5, layer: document.Layer{PageIndex: 0}})
	if _, ok := m.page.Layer(); ok {
		t.Error("Expected layer for another scale to be ignored")
	}
}

func TestView_States(t *testing.T) {
	m := newTestModel(t)

	if !strings.Contains(m.View(), "Welcome to PDF Viewer") {
		t.Error("Expected welcome screen")
	}

	m.Update(docErrorMsg{path: "bad.pdf", err: errors.New("not a pdf")})
	view := m.View()
	if !strings.Contains(view, "Error loading PDF") || !strings.Contains(view, "Please try another document") {
		t.Errorf("Expected load error screen, got:\n%s", view)
	}

	m.Update(keyRunes("?"))
	if m.mode != modeHelp || !strings.Contains(m.View(), "Help") {
		t.Error("Expected help view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeNormal {
		t.Errorf("Expected help to close, got mode %d", m.mode)
	}
}

func TestSidebarView(t *testing.T) {
	m := newTestModel(t)
	m.store.SetNumPages(3)
	m.store.SetSearchQuery("cat, dog")
	m.Update(scanResultMsg{seq: m.seq.Next(), matches: sampleMatches()})

	view := m.sidebar.View(m.store, false, false)
	if !strings.Contains(view, "2 results") {
		t.Errorf("Expected result count, got:\n%s", view)
	}
	if !strings.Contains(view, "Page 3") {
		t.Errorf("Expected page label for second match, got:\n%s", view)
	}

	m.store.SetMatches(nil)
	view = m.sidebar.View(m.store, false, false)
	if !strings.Contains(view, "No matches found") {
		t.Errorf("Expected no matches text, got:\n%s", view)
	}

	view = m.sidebar.View(m.store, true, false)
	if !strings.Contains(view, "Searching...") {
		t.Errorf("Expected searching text, got:\n%s", view)
	}
}
