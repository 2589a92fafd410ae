package components

import "github.com/charmbracelet/bubbles/key"

// KeyMap 定义全局快捷键映射（使用 bubbles/key 管理）
type KeyMap struct {
	// 全局快捷键
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Open     key.Binding
	Language key.Binding

	// 搜索
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding

	// 结果列表 / 页面滚动
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// 翻页与缩放
	PrevPage  key.Binding
	NextPage  key.Binding
	PageInput key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding
	Sidebar   key.Binding
}

// DefaultKeyMap 返回默认的快捷键映射
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出程序"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "显示帮助"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "清除搜索"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "打开文件"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "切换语言"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "搜索"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("f3", "ctrl+g", "n"),
			key.WithHelp("F3/n", "下一个匹配"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("shift+f3", "f15", "ctrl+p", "N"),
			key.WithHelp("⇧F3/N", "上一个匹配"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "向上"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "向下"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "确认"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "向上翻屏"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "向下翻屏"),
		),

		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "上一页"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "下一页"),
		),
		PageInput: key.NewBinding(
			key.WithKeys(":", "p"),
			key.WithHelp(":/p", "跳转页码"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "放大"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "缩小"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "重置缩放"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "侧栏"),
		),
	}
}

// ShortHelp 返回简短的帮助信息（用于底部状态栏）
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextMatch, k.PrevMatch, k.Help, k.Quit}
}

// FullHelp 返回完整的帮助信息（用于帮助面板）
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.NextMatch, k.PrevMatch, k.Back},              // 搜索
		{k.PrevPage, k.NextPage, k.PageInput, k.Up, k.Down},       // 导航
		{k.ZoomIn, k.ZoomOut, k.ZoomReset, k.Sidebar},             // 视图
		{k.Open, k.Language, k.Help, k.Quit},                      // 其他
	}
}
