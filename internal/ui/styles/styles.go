// Package styles 定义全局统一的 UI 样式
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"pdfscope/internal/search"
)

// 颜色常量
const (
	ColorPrimary   = "220" // 黄色 - 标题、高亮
	ColorSecondary = "81"  // 蓝色 - 键名、标签
	ColorSuccess   = "82"  // 绿色 - 结果数
	ColorError     = "196" // 红色 - 错误
	ColorWarning   = "214" // 橙色 - 警告
	ColorMuted     = "245" // 灰色 - 次要信息、提示
	ColorText      = "252" // 白色 - 正常文本
	ColorBorder    = "240" // 深灰 - 边框
	ColorPaper     = "236" // 页面底色
	ColorInk       = "16"  // 高亮上的文字
)

// ========== 通用基础样式 ==========

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary)).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary))

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)
)

// ========== 边框/容器样式 ==========

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1, 2)

	StateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1, 2).
			Width(60)

	// PageStyle 页面纸张边框
	PageStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorBorder))
)

// ========== 搜索样式 ==========

var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondary)).
				Bold(true)

	SearchHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	// ResultSelectedStyle 结果列表中激活的行
	ResultSelectedStyle = lipgloss.NewStyle().
				Reverse(true).
				Bold(true)
)

// ========== 状态栏样式 ==========

var (
	StatusBarLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorPrimary)).
				Bold(true)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondary))

	StatusBarValueStyle = lipgloss.NewStyle()
)

// ========== 高亮样式 ==========

// HighlightStyle 返回某个关键词颜色的高亮样式，active 为当前激活匹配
func HighlightStyle(colorIndex int, active bool) lipgloss.Style {
	idx := search.ColorIndex(colorIndex)
	if active {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(search.ActivePalette[idx])).
			Foreground(lipgloss.Color(ColorInk)).
			Bold(true).
			Underline(true)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(search.Palette[idx])).
		Foreground(lipgloss.Color(ColorInk))
}

// TermMarker 返回结果列表里标识关键词颜色的小色块
func TermMarker(colorIndex int) string {
	idx := search.ColorIndex(colorIndex)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(search.Palette[idx])).
		Render("●")
}
