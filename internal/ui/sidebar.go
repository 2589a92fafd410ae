package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfscope/internal/i18n"
	"pdfscope/internal/search"
	"pdfscope/internal/store"
	"pdfscope/internal/ui/components"
	"pdfscope/internal/ui/styles"
)

// sidebarWidth 侧栏总宽度（含边框）
const sidebarWidth = 36

// Sidebar 侧栏：搜索输入框、结果列表和文件信息
type Sidebar struct {
	input   textinput.Model
	spinner spinner.Model

	cursor int // 结果列表光标（键盘选择模式下）
	offset int // 结果列表首个可见行

	width  int
	height int
}

// NewSidebar 创建侧栏
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = i18n.T("search_placeholder")
	ti.CharLimit = 200
	ti.Width = sidebarWidth - 8

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.ColorPrimary))

	return &Sidebar{
		input:   ti,
		spinner: sp,
		width:   sidebarWidth,
	}
}

// SetHeight 设置侧栏高度
func (s *Sidebar) SetHeight(height int) {
	s.height = height
}

// Focus 聚焦搜索框
func (s *Sidebar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur 取消搜索框焦点
func (s *Sidebar) Blur() {
	s.input.Blur()
}

// Focused 搜索框是否聚焦
func (s *Sidebar) Focused() bool {
	return s.input.Focused()
}

// Query 返回搜索框当前内容
func (s *Sidebar) Query() string {
	return s.input.Value()
}

// SetQuery 设置搜索框内容
func (s *Sidebar) SetQuery(q string) {
	s.input.SetValue(q)
	s.input.CursorEnd()
}

// UpdateInput 把按键交给搜索框，返回内容是否发生变化
func (s *Sidebar) UpdateInput(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// UpdateSpinner 推进加载动画
func (s *Sidebar) UpdateSpinner(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// Cursor 返回结果列表光标
func (s *Sidebar) Cursor() int {
	return s.cursor
}

// MoveCursor 移动结果列表光标
func (s *Sidebar) MoveCursor(delta, count int) {
	if count == 0 {
		s.cursor = 0
		return
	}
	s.cursor = clampInt(s.cursor+delta, 0, count-1)
	s.ensureVisible(s.cursor)
}

// Follow 让光标和可见区域跟随激活匹配
func (s *Sidebar) Follow(activeIndex int) {
	if activeIndex == search.NoActiveMatch {
		s.cursor = 0
		s.offset = 0
		return
	}
	s.cursor = activeIndex
	s.ensureVisible(activeIndex)
}

func (s *Sidebar) listHeight() int {
	// 标题、输入框、状态行、分隔线以及文件信息区
	h := s.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (s *Sidebar) ensureVisible(index int) {
	h := s.listHeight()
	if index < s.offset {
		s.offset = index
	}
	if index >= s.offset+h {
		s.offset = index - h + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// View 渲染侧栏
func (s *Sidebar) View(st *store.Store, searching, listFocused bool) string {
	inner := s.width - 4
	var b strings.Builder

	b.WriteString(s.input.View())
	b.WriteString("\n")
	b.WriteString(s.statusLine(st, searching))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(s.resultList(st, listFocused, inner))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(s.fileInfo(st, inner))

	return components.Panel(i18n.T("search"), b.String(), s.width-2, s.height-3)
}

func (s *Sidebar) statusLine(st *store.Store, searching bool) string {
	switch {
	case searching:
		return s.spinner.View() + " " + styles.MutedStyle.Render(i18n.T("searching"))
	case strings.TrimSpace(st.SearchQuery()) == "":
		return styles.HintStyle.Render(i18n.T("scroll_hint"))
	case st.MatchCount() == 0:
		return styles.WarningStyle.Render(i18n.T("no_matches"))
	default:
		status := fmt.Sprintf("%d %s", st.MatchCount(), i18n.T("results"))
		if active := st.ActiveIndex(); active != search.NoActiveMatch {
			status += styles.MutedStyle.Render(fmt.Sprintf("  [%d/%d]", active+1, st.MatchCount()))
		}
		return styles.SuccessStyle.Render(status)
	}
}

func (s *Sidebar) resultList(st *store.Store, listFocused bool, width int) string {
	matches := st.Matches()
	h := s.listHeight()
	if len(matches) == 0 {
		return strings.Repeat("\n", h-1)
	}

	active := st.ActiveIndex()
	end := s.offset + h
	if end > len(matches) {
		end = len(matches)
	}

	lines := make([]string, 0, h)
	for i := s.offset; i < end; i++ {
		m := matches[i]
		label := fmt.Sprintf("%s %d · %s %d  %s",
			i18n.T("page"), m.PageIndex+1, i18n.T("match"), i+1,
			components.TruncateString(m.Text, 12))
		label = components.TruncateString(label, width-3)

		row := styles.TermMarker(m.TermIndex) + " " + label
		switch {
		case i == active:
			row = styles.TermMarker(m.TermIndex) + " " + styles.ResultSelectedStyle.Render(label)
		case listFocused && i == s.cursor:
			row = styles.TermMarker(m.TermIndex) + " " + styles.SubtitleStyle.Render(label)
		}
		lines = append(lines, row)
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (s *Sidebar) fileInfo(st *store.Store, width int) string {
	doc := st.File()
	if doc == nil {
		return styles.HintStyle.Render(i18n.T("welcome_hint"))
	}
	name := styles.SubtitleStyle.Render("📄 " + components.TruncateString(doc.Name(), width-3))
	meta := styles.MutedStyle.Render(fmt.Sprintf("%.2f MB · %d %s", doc.SizeMB(), st.NumPages(), i18n.T("pages")))
	return name + "\n" + meta
}
