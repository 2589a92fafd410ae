package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OverlayCentered 将弹出内容居中叠加到基础内容上
// screenHeight 为 0 时使用基础内容的行数。
func OverlayCentered(baseContent, overlayContent string, screenWidth, screenHeight int) string {
	if overlayContent == "" {
		return baseContent
	}

	baseLines := strings.Split(baseContent, "\n")
	boxLines := strings.Split(overlayContent, "\n")

	total := screenHeight
	if total <= 0 {
		total = len(baseLines)
	}
	for len(baseLines) < total {
		baseLines = append(baseLines, "")
	}

	top := 0
	if total > len(boxLines) {
		top = (total - len(boxLines)) / 2
	}

	left := 0
	if w := lipgloss.Width(overlayContent); screenWidth > w {
		left = (screenWidth - w) / 2
	}
	pad := strings.Repeat(" ", left)

	for i, line := range boxLines {
		if top+i >= len(baseLines) {
			break
		}
		baseLines[top+i] = pad + line
	}
	return strings.Join(baseLines, "\n")
}

// DialogBox 渲染带标题的弹出框，宽度限制在 [40, 72]
func DialogBox(title, content string, screenWidth int, borderColor string) string {
	boxWidth := screenWidth / 2
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > 72 {
		boxWidth = 72
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2).
		Width(boxWidth)

	if title == "" {
		return style.Render(content)
	}
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(borderColor)).
		Bold(true)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", content))
}
