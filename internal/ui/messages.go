package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pdfscope/internal/config"
	"pdfscope/internal/document"
	"pdfscope/internal/search"
	"pdfscope/internal/task"
)

// docLoadedMsg 文档加载完成
type docLoadedMsg struct {
	doc *document.Document
}

// docErrorMsg 文档加载失败
type docErrorMsg struct {
	path string
	err  error
}

// searchDebounceMsg 防抖计时到期，seq 不是最新时丢弃
type searchDebounceMsg struct {
	seq   uint64
	query string
}

// scanResultMsg 一次全文扫描的结果
type scanResultMsg struct {
	seq       uint64
	query     string
	matches   []search.Match
	err       error
	cancelled bool
}

// layerMsg 某页文本层提取完成
type layerMsg struct {
	doc   *document.Document
	page  int // 1-based
	scale float64
	layer document.Layer
	err   error
}

// prefsSavedMsg 偏好写盘完成
type prefsSavedMsg struct {
	err error
}

// loadDocumentCmd 在后台打开并解析 PDF
func loadDocumentCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := document.Open(path)
		if err != nil {
			return docErrorMsg{path: path, err: err}
		}
		return docLoadedMsg{doc: doc}
	}
}

// debounceCmd 在 delay 后发出带序号的防抖消息
func debounceCmd(seq uint64, query string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return searchDebounceMsg{seq: seq, query: query} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
}

// waitScanCmd 等待扫描任务结束
func waitScanCmd(st *task.ScanTask) tea.Cmd {
	return func() tea.Msg {
		matches, err := st.Wait(context.Background())
		return scanResultMsg{
			seq:       st.Seq(),
			query:     st.Query(),
			matches:   matches,
			err:       err,
			cancelled: st.Status() == task.StatusCancelled || errors.Is(err, context.Canceled),
		}
	}
}

// layerCmd 在后台提取一页文本层
func layerCmd(doc *document.Document, page int, scale float64) tea.Cmd {
	return func() tea.Msg {
		layer, err := doc.TextLayer(context.Background(), page-1, scale)
		return layerMsg{doc: doc, page: page, scale: scale, layer: layer, err: err}
	}
}

// savePrefsCmd 在后台保存偏好
func savePrefsCmd(path string, prefs config.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: config.SavePrefs(path, &prefs)}
	}
}
