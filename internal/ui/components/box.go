package components

import (
	"github.com/charmbracelet/lipgloss"

	"pdfscope/internal/ui/styles"
)

// Panel 渲染带标题的固定尺寸面板，height <= 0 时高度随内容
func Panel(title, content string, width, height int) string {
	style := styles.BoxStyle.Width(width)
	if height > 0 {
		style = style.Height(height)
	}
	titleLine := " " + styles.TitleStyle.Render("─ "+title)
	return lipgloss.JoinVertical(lipgloss.Left, titleLine, style.Render(content))
}
