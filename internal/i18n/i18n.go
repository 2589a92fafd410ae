package i18n

import (
	"os"
	"strings"
)

// Language type
type Language string

const (
	EN Language = "en"
	ZH Language = "zh"
)

var current = EN

// Messages all text messages
type Messages struct {
	// Common
	Loading string
	Error   string
	Help    string
	Search  string
	Clear   string
	Quit    string
	Back    string

	// Welcome / load states
	AppTitle      string
	Welcome       string
	WelcomeHint   string
	LoadError     string
	LoadErrorHint string
	OpenFile      string
	OpenFileHint  string

	// Sidebar
	SearchPlaceholder string
	Searching         string
	Results           string
	NoMatches         string
	Page              string
	Match             string
	Pages             string
	SearchFailed      string
	TaskCancelled     string

	// Page view
	Zoom          string
	GoToPage      string
	NoTextOnPage  string
	PageOf        string
	InvalidPage   string
	PrefsSaveFail string

	// Help sections
	HelpSearch     string
	HelpNavigation string
	HelpView       string
	HelpGeneral    string

	// Key hints
	FocusSearch    string
	ClearSearch    string
	NextMatch      string
	PrevMatch      string
	PrevPage       string
	NextPage       string
	PageInput      string
	ZoomIn         string
	ZoomOut        string
	ZoomReset      string
	ToggleSidebar  string
	ToggleLanguage string
	ShowHelp       string
	ScrollHint     string
}

var messages = map[Language]*Messages{
	EN: enMessages,
	ZH: zhMessages,
}

// SetLanguage set current language
func SetLanguage(lang Language) {
	if _, ok := messages[lang]; ok {
		current = lang
	}
}

// GetLanguage get current language
func GetLanguage() Language {
	return current
}

// ToggleLanguage toggle between EN and ZH
func ToggleLanguage() Language {
	if current == EN {
		current = ZH
	} else {
		current = EN
	}
	return current
}

// GetLanguageDisplay get display name for current language
func GetLanguageDisplay() string {
	if current == ZH {
		return "中文"
	}
	return "EN"
}

// T get translated text
func T(key string) string {
	m := messages[current]
	if m == nil {
		m = messages[EN]
	}

	switch key {
	// Common
	case "loading":
		return m.Loading
	case "error":
		return m.Error
	case "help":
		return m.Help
	case "search":
		return m.Search
	case "clear":
		return m.Clear
	case "quit":
		return m.Quit
	case "back":
		return m.Back

	// Welcome / load states
	case "app_title":
		return m.AppTitle
	case "welcome":
		return m.Welcome
	case "welcome_hint":
		return m.WelcomeHint
	case "load_error":
		return m.LoadError
	case "load_error_hint":
		return m.LoadErrorHint
	case "open_file":
		return m.OpenFile
	case "open_file_hint":
		return m.OpenFileHint

	// Sidebar
	case "search_placeholder":
		return m.SearchPlaceholder
	case "searching":
		return m.Searching
	case "results":
		return m.Results
	case "no_matches":
		return m.NoMatches
	case "page":
		return m.Page
	case "match":
		return m.Match
	case "pages":
		return m.Pages
	case "search_failed":
		return m.SearchFailed
	case "task_cancelled":
		return m.TaskCancelled

	// Page view
	case "zoom":
		return m.Zoom
	case "go_to_page":
		return m.GoToPage
	case "no_text_on_page":
		return m.NoTextOnPage
	case "page_of":
		return m.PageOf
	case "invalid_page":
		return m.InvalidPage
	case "prefs_save_failed":
		return m.PrefsSaveFail

	// Help sections
	case "help_search":
		return m.HelpSearch
	case "help_navigation":
		return m.HelpNavigation
	case "help_view":
		return m.HelpView
	case "help_general":
		return m.HelpGeneral

	// Key hints
	case "focus_search":
		return m.FocusSearch
	case "clear_search":
		return m.ClearSearch
	case "next_match":
		return m.NextMatch
	case "prev_match":
		return m.PrevMatch
	case "prev_page":
		return m.PrevPage
	case "next_page":
		return m.NextPage
	case "page_input":
		return m.PageInput
	case "zoom_in":
		return m.ZoomIn
	case "zoom_out":
		return m.ZoomOut
	case "zoom_reset":
		return m.ZoomReset
	case "toggle_sidebar":
		return m.ToggleSidebar
	case "toggle_language":
		return m.ToggleLanguage
	case "show_help":
		return m.ShowHelp
	case "scroll_hint":
		return m.ScrollHint

	default:
		return key
	}
}

// ParseLanguage parse a language name such as "zh", "zh_CN.UTF-8" or "en"
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return "", false
	case strings.HasPrefix(s, "zh"):
		return ZH, true
	case strings.HasPrefix(s, "en"):
		return EN, true
	default:
		return "", false
	}
}

// DetectLanguage detect language from environment variables
func DetectLanguage() Language {
	lang := os.Getenv("LANG")
	if lang == "" {
		lang = os.Getenv("LANGUAGE")
	}
	if lang == "" {
		lang = os.Getenv("LC_ALL")
	}

	if l, ok := ParseLanguage(lang); ok {
		return l
	}
	return EN
}

// Init initialize i18n, auto-detect language
func Init() {
	SetLanguage(DetectLanguage())
}
