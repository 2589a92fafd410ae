package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"pdfscope/internal/i18n"
	"pdfscope/internal/ui/components"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11")).
			MarginLeft(2).
			MarginTop(1)

	helpTableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginLeft(2)

	helpHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginLeft(2).
			MarginTop(1)
)

// HelpView 帮助面板（bubbles/help + lipgloss）
type HelpView struct {
	width  int
	height int

	help help.Model
	keys components.KeyMap
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// NewHelpView 创建帮助视图
func NewHelpView(keys components.KeyMap) *HelpView {
	return &HelpView{
		help: help.New(),
		keys: keys,
	}
}

// SetSize 设置视图尺寸
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width - 4
}

// ShortHelp 底部状态栏的快捷键提示
func (v *HelpView) ShortHelp() string {
	return v.help.ShortHelpView(v.keys.ShortHelp())
}

func (v *HelpView) sections() []helpSection {
	return []helpSection{
		{
			title: i18n.T("help_search"),
			items: []helpItem{
				{"/", i18n.T("focus_search")},
				{"Enter", i18n.T("search")},
				{"Esc", i18n.T("clear_search")},
				{"F3 / Ctrl+G / n", i18n.T("next_match")},
				{"Shift+F3 / Ctrl+P / N", i18n.T("prev_match")},
				{"Tab", i18n.T("match")},
			},
		},
		{
			title: i18n.T("help_navigation"),
			items: []helpItem{
				{"[ / ]", i18n.T("prev_page") + " / " + i18n.T("next_page")},
				{": / p", i18n.T("page_input")},
				{"j/k ↑/↓", i18n.T("scroll_hint")},
			},
		},
		{
			title: i18n.T("help_view"),
			items: []helpItem{
				{"+ / -", i18n.T("zoom_in") + " / " + i18n.T("zoom_out")},
				{"0", i18n.T("zoom_reset")},
				{"s", i18n.T("toggle_sidebar")},
			},
		},
		{
			title: i18n.T("help_general"),
			items: []helpItem{
				{"o", i18n.T("open_file")},
				{"L", i18n.T("toggle_language")},
				{"?", i18n.T("show_help")},
				{"q / Ctrl+C", i18n.T("quit")},
			},
		},
	}
}

// View 渲染帮助面板
func (v *HelpView) View() string {
	title := helpTitleStyle.Render("🆘 " + i18n.T("app_title") + " " + i18n.T("help"))

	var content strings.Builder
	for _, section := range v.sections() {
		content.WriteString(helpHeaderStyle.Render("  " + section.title))
		content.WriteString("\n")

		for _, item := range section.items {
			content.WriteString("    " + helpKeyStyle.Render(item.key))
			padding := 24 - lipgloss.Width(item.key)
			if padding < 2 {
				padding = 2
			}
			content.WriteString(strings.Repeat(" ", padding))
			content.WriteString(helpDescStyle.Render(item.desc))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	v.help.ShowAll = true
	detail := lipgloss.NewStyle().MarginLeft(2).MarginTop(1).Render(v.help.View(v.keys))
	v.help.ShowAll = false

	footer := helpFooterStyle.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Render("Esc / ?  " + i18n.T("back")),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		helpTableStyle.Render(content.String()),
		detail,
		footer,
	)
}
