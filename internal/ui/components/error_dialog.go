package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// 错误弹窗样式
var (
	errorDialogStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(1, 2)

	errorDialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	errorDialogMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	errorDialogHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

// ErrorDialog 错误弹窗：搜索失败、偏好保存失败等非致命错误
type ErrorDialog struct {
	visible bool
	title   string
	message string
	hint    string
	width   int
	height  int
}

// NewErrorDialog 创建错误弹窗
func NewErrorDialog() *ErrorDialog {
	return &ErrorDialog{
		width: 80,
		hint:  "[Esc/Enter]",
	}
}

// Show 显示错误弹窗
func (d *ErrorDialog) Show(title, message string) {
	d.visible = true
	d.title = title
	d.message = message
}

// Hide 隐藏错误弹窗
func (d *ErrorDialog) Hide() {
	d.visible = false
	d.title = ""
	d.message = ""
}

// IsVisible 是否可见
func (d *ErrorDialog) IsVisible() bool {
	return d.visible
}

// Message 当前显示的消息
func (d *ErrorDialog) Message() string {
	return d.message
}

// SetSize 设置屏幕尺寸
func (d *ErrorDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update 处理输入，返回 handled: 事件是否已被弹窗吞掉
func (d *ErrorDialog) Update(msg tea.Msg) bool {
	if !d.visible {
		return false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter":
			d.Hide()
		}
		return true
	}
	return false
}

// View 渲染错误弹窗
func (d *ErrorDialog) View() string {
	if !d.visible {
		return ""
	}

	boxWidth := d.width - 10
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > 72 {
		boxWidth = 72
	}

	// 消息交给 lipgloss 自动折行
	msg := errorDialogMsgStyle.Width(boxWidth - 6).Render(d.message)

	content := lipgloss.JoinVertical(lipgloss.Left,
		errorDialogTitleStyle.Render("❌ "+d.title),
		"",
		msg,
		"",
		errorDialogHintStyle.Render(d.hint),
	)
	return errorDialogStyle.Width(boxWidth).Render(content)
}

// Overlay 将错误弹窗叠加到基础内容上（居中显示）
func (d *ErrorDialog) Overlay(baseContent string) string {
	if !d.visible {
		return baseContent
	}
	return OverlayCentered(baseContent, d.View(), d.width, d.height)
}
