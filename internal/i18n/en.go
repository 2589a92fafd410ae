package i18n

var enMessages = &Messages{
	// Common
	Loading: "Loading...",
	Error:   "Error",
	Help:    "Help",
	Search:  "Search",
	Clear:   "Clear",
	Quit:    "Quit",
	Back:    "Back",

	// Welcome / load states
	AppTitle:      "PDF Viewer",
	Welcome:       "Welcome to PDF Viewer",
	WelcomeHint:   "Press o to open a PDF document",
	LoadError:     "Error loading PDF",
	LoadErrorHint: "Please try another document",
	OpenFile:      "Open PDF",
	OpenFileHint:  "Enter to open, Esc to cancel",

	// Sidebar
	SearchPlaceholder: "Search terms, comma separated",
	Searching:         "Searching...",
	Results:           "results",
	NoMatches:         "No matches found",
	Page:              "Page",
	Match:             "Match",
	Pages:             "pages",
	SearchFailed:      "Search failed",
	TaskCancelled:     "Search cancelled",

	// Page view
	Zoom:          "Zoom",
	GoToPage:      "Go to page",
	NoTextOnPage:  "No text on this page",
	PageOf:        "of",
	InvalidPage:   "Invalid page",
	PrefsSaveFail: "Failed to save preferences",

	// Help sections
	HelpSearch:     "Search",
	HelpNavigation: "Navigation",
	HelpView:       "View",
	HelpGeneral:    "General",

	// Key hints
	FocusSearch:    "Search",
	ClearSearch:    "Clear search",
	NextMatch:      "Next match",
	PrevMatch:      "Previous match",
	PrevPage:       "Previous page",
	NextPage:       "Next page",
	PageInput:      "Go to page",
	ZoomIn:         "Zoom in",
	ZoomOut:        "Zoom out",
	ZoomReset:      "Reset zoom",
	ToggleSidebar:  "Toggle sidebar",
	ToggleLanguage: "Switch language",
	ShowHelp:       "Show/Hide help",
	ScrollHint:     "↑/↓ scroll",
}
