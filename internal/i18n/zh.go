package i18n

var zhMessages = &Messages{
	// Common
	Loading: "加载中...",
	Error:   "错误",
	Help:    "帮助",
	Search:  "搜索",
	Clear:   "清除",
	Quit:    "退出",
	Back:    "返回",

	// Welcome / load states
	AppTitle:      "PDF 阅读器",
	Welcome:       "欢迎使用 PDF 阅读器",
	WelcomeHint:   "按 o 打开 PDF 文档",
	LoadError:     "PDF 加载失败",
	LoadErrorHint: "请尝试其他文档",
	OpenFile:      "打开 PDF",
	OpenFileHint:  "Enter 打开，Esc 取消",

	// Sidebar
	SearchPlaceholder: "搜索词，用逗号分隔",
	Searching:         "搜索中...",
	Results:           "个结果",
	NoMatches:         "没有找到匹配项",
	Page:              "页",
	Match:             "匹配",
	Pages:             "页",
	SearchFailed:      "搜索失败",
	TaskCancelled:     "搜索已取消",

	// Page view
	Zoom:          "缩放",
	GoToPage:      "跳转到页",
	NoTextOnPage:  "本页没有文本",
	PageOf:        "/",
	InvalidPage:   "无效页码",
	PrefsSaveFail: "保存偏好失败",

	// Help sections
	HelpSearch:     "搜索",
	HelpNavigation: "导航",
	HelpView:       "视图",
	HelpGeneral:    "通用",

	// Key hints
	FocusSearch:    "搜索",
	ClearSearch:    "清除搜索",
	NextMatch:      "下一个匹配",
	PrevMatch:      "上一个匹配",
	PrevPage:       "上一页",
	NextPage:       "下一页",
	PageInput:      "跳转页码",
	ZoomIn:         "放大",
	ZoomOut:        "缩小",
	ZoomReset:      "重置缩放",
	ToggleSidebar:  "显示/隐藏侧栏",
	ToggleLanguage: "切换语言",
	ShowHelp:       "显示/隐藏帮助",
	ScrollHint:     "↑/↓ 滚动",
}
