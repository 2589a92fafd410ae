package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfscope/internal/task"
)

// TaskBar 底部搜索进度条
type TaskBar struct {
	manager *task.Manager
	width   int
	events  <-chan task.Event
	last    task.Event
}

// 任务栏样式
var (
	taskBarLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	taskBarIconStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("81"))

	taskBarNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	taskBarProgressStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82"))

	taskBarHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	taskBarErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

// NewTaskBar 创建任务栏并订阅任务事件
func NewTaskBar(manager *task.Manager) *TaskBar {
	if manager == nil {
		manager = task.GetManager()
	}
	return &TaskBar{
		manager: manager,
		events:  manager.Subscribe(),
	}
}

// SetWidth 设置宽度
func (t *TaskBar) SetWidth(width int) {
	t.width = width
}

// HasActiveTasks 是否有活跃任务
func (t *TaskBar) HasActiveTasks() bool {
	return len(t.manager.ListActiveTasks()) > 0
}

// CancelAllTasks 取消所有活跃任务
func (t *TaskBar) CancelAllTasks() int {
	return t.manager.CancelActive()
}

// Update 记录最近一次事件，返回继续监听的命令
func (t *TaskBar) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(TaskEventMsg); ok {
		t.last = ev.Event
		if ev.Event.Type != task.EventProgress && ev.Event.Type != task.EventStarted {
			t.manager.CleanupCompleted()
		}
		return t.ListenForEvents()
	}
	return nil
}

// LastFailure 最近一次失败事件的消息
func (t *TaskBar) LastFailure() (string, bool) {
	if t.last.Type == task.EventFailed {
		return t.last.Message, true
	}
	return "", false
}

// View 渲染任务栏，没有活跃任务时返回空字符串
func (t *TaskBar) View() string {
	tasks := t.manager.ListActiveTasks()
	if len(tasks) == 0 {
		return ""
	}

	width := t.width - 4
	if width < 40 {
		width = 40
	}

	first := tasks[0]
	progress := first.Progress()

	barWidth := 20
	filled := int(progress / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	line := fmt.Sprintf("%s %s %.0f%% [%s]",
		taskBarIconStyle.Render("🔍"),
		taskBarNameStyle.Render(TruncateString(first.Name(), 25)),
		progress,
		taskBarProgressStyle.Render(bar),
	)

	if msg := first.Message(); msg != "" {
		style := taskBarHintStyle
		if first.Status() == task.StatusFailed {
			style = taskBarErrorStyle
		}
		line += "  " + style.Render(TruncateString(msg, width/3))
	}

	separator := taskBarLineStyle.Render(strings.Repeat("─", width))
	return separator + "\n  " + line
}

// Close 取消事件订阅
func (t *TaskBar) Close() {
	t.manager.Unsubscribe(t.events)
}

// TruncateString 按字符截断字符串
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// TaskEventMsg 任务事件消息（用于 Bubble Tea）
type TaskEventMsg struct {
	Event task.Event
}

// ListenForEvents 监听任务事件（返回 tea.Cmd）
func (t *TaskBar) ListenForEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-t.events
		if !ok {
			return nil
		}
		return TaskEventMsg{Event: event}
	}
}
