package ui

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfscope/internal/config"
	"pdfscope/internal/i18n"
	"pdfscope/internal/nav"
	"pdfscope/internal/search"
	"pdfscope/internal/store"
	"pdfscope/internal/task"
	"pdfscope/internal/ui/components"
	"pdfscope/internal/ui/styles"
)

// inputMode 决定按键交给谁处理
type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modePageInput
	modeResults
	modePicker
	modeHelp
)

// Options 创建主模型所需的参数
type Options struct {
	Config  *config.Config
	Prefs   *config.Prefs
	Path    string // 启动时打开的文件
	Query   string // 启动时执行的查询
	Logger  *log.Logger
	Manager *task.Manager
}

// changeSet 收集 store 通知的字段，在一次 Update 结束时统一处理
type changeSet struct {
	fields map[store.Field]bool
}

func (c *changeSet) add(f store.Field) {
	c.fields[f] = true
}

func (c *changeSet) take() map[store.Field]bool {
	f := c.fields
	c.fields = make(map[store.Field]bool)
	return f
}

// Model 是 TUI 的主模型
type Model struct {
	cfg    *config.Config
	prefs  config.Prefs
	logger *log.Logger

	store   *store.Store
	nav     *nav.Controller
	seq     *search.Sequencer
	engine  *search.Engine
	manager *task.Manager
	subID   string
	changes *changeSet

	sidebar   *Sidebar
	page      *PageView
	controls  *Controls
	helpView  *HelpView
	taskBar   *components.TaskBar
	errDialog *components.ErrorDialog
	picker    filepicker.Model
	keys      components.KeyMap

	mode         inputMode
	loading      bool // 文档加载中
	searching    bool // 防抖或扫描尚未结束
	initialPath  string
	initialQuery string

	width  int
	height int
}

// NewModel 创建主模型
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{SearchDebounce: config.DefaultDebounce}
	}
	prefs := config.Prefs{Version: config.PrefsVersion}
	if opts.Prefs != nil {
		prefs = *opts.Prefs
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	manager := opts.Manager
	if manager == nil {
		manager = task.GetManager()
	}

	scale := nav.DefaultScale
	if prefs.Scale > 0 {
		scale = nav.ClampScale(prefs.Scale)
	}

	st := store.New(scale)
	changes := &changeSet{fields: make(map[store.Field]bool)}
	subID := st.Subscribe(func(f store.Field, _ *store.Store) {
		changes.add(f)
	})

	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	fp.AutoHeight = false
	fp.Height = 12
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	keys := components.DefaultKeyMap()

	return &Model{
		cfg:          cfg,
		prefs:        prefs,
		logger:       logger,
		store:        st,
		nav:          nav.NewController(st),
		seq:          &search.Sequencer{},
		engine:       search.NewEngine(logger),
		manager:      manager,
		subID:        subID,
		changes:      changes,
		sidebar:      NewSidebar(),
		page:         NewPageView(),
		controls:     NewControls(),
		helpView:     NewHelpView(keys),
		taskBar:      components.NewTaskBar(manager),
		errDialog:    components.NewErrorDialog(),
		picker:       fp,
		keys:         keys,
		initialPath:  opts.Path,
		initialQuery: opts.Query,
		width:        100,
		height:       30,
	}
}

// Store 返回状态（供命令行层和测试读取）
func (m *Model) Store() *store.Store {
	return m.store
}

// Init 初始化：开始监听任务事件，并加载启动参数指定的文件
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.taskBar.ListenForEvents()}
	if m.initialPath != "" {
		m.loading = true
		cmds = append(cmds, loadDocumentCmd(m.initialPath), m.sidebar.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update 处理消息，然后根据 store 的变化补发后续命令
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.handle(msg)
	return m, tea.Batch(cmd, m.sync())
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.mode == modePicker {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return cmd
		}
		return nil

	case docLoadedMsg:
		m.loading = false
		m.page.Reset()
		m.store.SetFile(msg.doc)
		m.sidebar.SetQuery("")
		m.logger.Printf("opened %s: %d pages, %.2f MB", msg.doc.Name(), msg.doc.NumPages(), msg.doc.SizeMB())
		if q := strings.TrimSpace(m.initialQuery); q != "" {
			m.initialQuery = ""
			m.sidebar.SetQuery(q)
			return m.commitQuery(q, m.seq.Next())
		}
		return nil

	case docErrorMsg:
		m.loading = false
		m.page.Reset()
		m.logger.Printf("load %s: %v", msg.path, msg.err)
		m.store.SetLoadError(msg.err)
		return nil

	case searchDebounceMsg:
		if !m.seq.IsLatest(msg.seq) {
			return nil
		}
		return m.commitQuery(msg.query, msg.seq)

	case scanResultMsg:
		return m.applyScan(msg)

	case layerMsg:
		if msg.doc != m.store.File() || msg.page != m.store.CurrentPage() || msg.scale != m.store.Scale() {
			return nil
		}
		if msg.err != nil {
			m.logger.Printf("text layer page %d: %v", msg.page, msg.err)
		}
		m.page.SetLayer(msg.layer, msg.err)
		m.refreshHighlights()
		m.page.CenterActive()
		return nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Printf("save prefs: %v", msg.err)
			m.errDialog.Show(i18n.T("prefs_save_failed"), msg.err.Error())
		}
		return nil

	case spinner.TickMsg:
		if m.searching || m.loading {
			return m.sidebar.UpdateSpinner(msg)
		}
		return nil

	case components.TaskEventMsg:
		return m.taskBar.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modePicker {
		return m.updatePicker(msg)
	}
	return m.page.Update(msg)
}

// sync 处理本轮 Update 中 store 发生的变化
// 高亮合并可能再次修改 store，所以循环到没有新变化为止。
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd
	for i := 0; i < 4; i++ {
		fields := m.changes.take()
		if len(fields) == 0 {
			break
		}

		if fields[store.FieldFile] || fields[store.FieldCurrentPage] || fields[store.FieldScale] {
			cmds = append(cmds, m.requestLayer())
		}
		if fields[store.FieldScale] {
			cmds = append(cmds, m.savePrefs())
		}
		if fields[store.FieldSearchQuery] || fields[store.FieldMatches] || fields[store.FieldActiveIndex] {
			m.refreshHighlights()
		}
		if fields[store.FieldActiveIndex] {
			m.sidebar.Follow(m.store.ActiveIndex())
			m.page.CenterActive()
		}
	}
	return tea.Batch(cmds...)
}

// requestLayer 为当前页和缩放比例请求文本层
func (m *Model) requestLayer() tea.Cmd {
	doc := m.store.File()
	if doc == nil {
		return nil
	}
	m.page.SetLoading()
	return layerCmd(doc, m.store.CurrentPage(), m.store.Scale())
}

// refreshHighlights 重新计算当前页高亮，并把本页匹配合并回全局列表
func (m *Model) refreshHighlights() {
	pageIndex := m.store.CurrentPage() - 1
	if !m.page.HasLayerFor(pageIndex) {
		return
	}
	layer, _ := m.page.Layer()
	terms := search.ParseTerms(m.store.SearchQuery())
	hl := search.Highlight(layer, terms, m.store.Matches(), m.store.ActiveIndex())
	m.page.SetHighlights(hl)

	// 扫描进行中时全局列表还是旧查询的结果，不能合并
	if m.searching || len(terms) == 0 {
		return
	}
	if merged, changed := search.Merge(m.store.Matches(), pageIndex, hl.Matches); changed {
		m.logger.Printf("merge page %d: %d matches", pageIndex+1, len(hl.Matches))
		m.store.SetMatches(merged)
	}
}

func (m *Model) savePrefs() tea.Cmd {
	scale := m.store.Scale()
	if m.cfg.StatePath == "" || scale == m.prefs.Scale {
		return nil
	}
	m.prefs.Scale = scale
	return savePrefsCmd(m.cfg.StatePath, m.prefs)
}

// queryChanged 搜索框内容变化：作废旧序号并重新开始防抖
func (m *Model) queryChanged() tea.Cmd {
	seq := m.seq.Next()
	if m.store.File() == nil {
		return nil
	}
	m.searching = true
	return tea.Batch(debounceCmd(seq, m.sidebar.Query(), m.cfg.SearchDebounce), m.sidebar.spinner.Tick)
}

// commitQuery 提交查询并启动扫描任务
func (m *Model) commitQuery(query string, seq uint64) tea.Cmd {
	m.manager.CancelActive()
	m.store.SetSearchQuery(query)

	// 查询清空时与 Esc 一致：清空匹配并回到第 1 页
	if len(search.ParseTerms(query)) == 0 {
		m.searching = false
		m.nav.ClearQuery()
		return nil
	}

	doc := m.store.File()
	if doc == nil {
		m.searching = false
		m.nav.ApplyResults(nil)
		return nil
	}

	st := task.NewScanTask(m.manager, m.engine, doc, query, seq)
	m.manager.Submit(st)
	m.searching = true
	m.logger.Printf("search #%d %q", seq, query)
	return tea.Batch(waitScanCmd(st), m.sidebar.spinner.Tick)
}

// applyScan 应用扫描结果，序号过期的结果直接丢弃
func (m *Model) applyScan(msg scanResultMsg) tea.Cmd {
	if !m.seq.IsLatest(msg.seq) {
		m.logger.Printf("discard stale search #%d %q", msg.seq, msg.query)
		return nil
	}
	m.searching = false

	if msg.cancelled {
		return nil
	}
	if msg.err != nil {
		m.logger.Printf("search #%d: %v", msg.seq, msg.err)
		m.errDialog.Show(i18n.T("search_failed"), msg.err.Error())
	}

	m.logger.Printf("search #%d %q: %d matches", msg.seq, msg.query, len(msg.matches))
	m.nav.ApplyResults(msg.matches)
	return nil
}

// clearSearch 清空搜索并回到第一页
func (m *Model) clearSearch() {
	m.seq.Next()
	m.manager.CancelActive()
	m.searching = false
	m.sidebar.SetQuery("")
	m.nav.ClearQuery()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	bodyHeight := height - 5
	if bodyHeight < 6 {
		bodyHeight = 6
	}
	m.sidebar.SetHeight(bodyHeight)

	pageWidth := width - 2
	if m.store.SidebarOpen() {
		pageWidth -= sidebarWidth
	}
	if pageWidth < 20 {
		pageWidth = 20
	}
	m.page.SetSize(pageWidth, bodyHeight)
	m.helpView.SetSize(width, height)
	m.taskBar.SetWidth(width)
	m.errDialog.SetSize(width, height)
	m.picker.Height = height - 10
	if m.picker.Height < 5 {
		m.picker.Height = 5
	}
}

// ========== 按键处理 ==========

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.errDialog.Update(msg) {
		return nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKeys(msg)
	case modePageInput:
		return m.handlePageInputKeys(msg)
	case modeResults:
		return m.handleResultKeys(msg)
	case modePicker:
		if msg.String() == "esc" {
			m.mode = modeNormal
			return nil
		}
		return m.updatePicker(msg)
	case modeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.mode = modeNormal
		}
		return nil
	}

	return m.handleNormalKeys(msg)
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return nil
	case key.Matches(msg, m.keys.Open):
		m.mode = modePicker
		return m.picker.Init()
	case key.Matches(msg, m.keys.Language):
		i18n.ToggleLanguage()
		return nil
	}

	// 以下操作需要已打开的文档
	if m.store.NumPages() == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.store.SetSidebarOpen(true)
		m.resize(m.width, m.height)
		return m.sidebar.Focus()
	case key.Matches(msg, m.keys.Back):
		m.clearSearch()
	case key.Matches(msg, m.keys.NextMatch):
		m.nav.Next()
	case key.Matches(msg, m.keys.PrevMatch):
		m.nav.Prev()
	case key.Matches(msg, m.keys.PrevPage):
		m.nav.PrevPage()
	case key.Matches(msg, m.keys.NextPage):
		m.nav.NextPage()
	case key.Matches(msg, m.keys.PageInput):
		m.mode = modePageInput
		return m.controls.StartEditing(m.store.CurrentPage())
	case key.Matches(msg, m.keys.ZoomIn):
		m.nav.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.nav.ZoomOut()
	case key.Matches(msg, m.keys.ZoomReset):
		m.nav.ResetZoom()
	case key.Matches(msg, m.keys.Sidebar):
		m.store.ToggleSidebar()
		m.resize(m.width, m.height)
	case msg.String() == "tab":
		if m.store.MatchCount() > 0 {
			m.mode = modeResults
			m.store.SetSidebarOpen(true)
			m.resize(m.width, m.height)
		}
	default:
		return m.page.Update(msg)
	}
	return nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.sidebar.Blur()
		m.mode = modeNormal
		m.clearSearch()
		return nil
	case "enter":
		// 立即提交，不再等待防抖
		m.sidebar.Blur()
		m.mode = modeNormal
		return m.commitQuery(m.sidebar.Query(), m.seq.Next())
	case "tab":
		m.sidebar.Blur()
		m.mode = modeNormal
		if m.store.MatchCount() > 0 {
			m.mode = modeResults
		}
		return nil
	case "f3", "ctrl+g":
		m.nav.Next()
		return nil
	case "shift+f3", "f15", "ctrl+p":
		m.nav.Prev()
		return nil
	}

	changed, cmd := m.sidebar.UpdateInput(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, m.queryChanged())
}

func (m *Model) handlePageInputKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.controls.Submit(m.nav)
		m.mode = modeNormal
		return nil
	case "esc":
		m.controls.StopEditing()
		m.mode = modeNormal
		return nil
	}
	return m.controls.Update(msg)
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveCursor(-1, m.store.MatchCount())
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveCursor(1, m.store.MatchCount())
	case key.Matches(msg, m.keys.Enter):
		m.nav.Select(m.sidebar.Cursor())
	case key.Matches(msg, m.keys.NextMatch):
		m.nav.Next()
	case key.Matches(msg, m.keys.PrevMatch):
		m.nav.Prev()
	case msg.String() == "tab", key.Matches(msg, m.keys.Back):
		m.mode = modeNormal
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return nil
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = modeNormal
		m.loading = true
		m.seq.Next()
		m.manager.CancelActive()
		m.searching = false
		return tea.Batch(cmd, loadDocumentCmd(path), m.sidebar.spinner.Tick)
	}
	return cmd
}

func (m *Model) quit() tea.Cmd {
	m.manager.CancelActive()
	m.store.Unsubscribe(m.subID)
	m.taskBar.Close()
	return tea.Quit
}

// ========== 渲染 ==========

// View 渲染整个界面
func (m *Model) View() string {
	if m.mode == modeHelp {
		return m.helpView.View()
	}

	header := m.renderHeader()

	var body string
	switch {
	case m.loading:
		body = m.renderState(m.sidebar.spinner.View()+" "+styles.MutedStyle.Render(i18n.T("loading")), "")
	case m.store.LoadError() != nil:
		body = m.renderState(
			styles.ErrorStyle.Render("❌ "+i18n.T("load_error")),
			i18n.T("load_error_hint")+"\n\n"+styles.MutedStyle.Render(m.store.LoadError().Error()),
		)
	case m.store.File() == nil:
		body = m.renderState(styles.TitleStyle.Render("📖 "+i18n.T("welcome")), i18n.T("welcome_hint"))
	default:
		body = m.renderDocument()
	}

	footer := m.renderFooter()
	out := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.mode == modePicker {
		picker := components.DialogBox("📂 "+i18n.T("open_file"),
			m.picker.View()+"\n"+styles.HintStyle.Render(i18n.T("open_file_hint")),
			m.width, styles.ColorSecondary)
		out = components.OverlayCentered(out, picker, m.width, m.height)
	}
	return m.errDialog.Overlay(out)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("📖 " + i18n.T("app_title"))
	if doc := m.store.File(); doc != nil {
		title += "  " + styles.SubtitleStyle.Render(doc.Name()) +
			styles.MutedStyle.Render(fmt.Sprintf("  %.2f MB", doc.SizeMB()))
	}
	lang := styles.MutedStyle.Render("[" + i18n.GetLanguageDisplay() + "]")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(lang) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + title + strings.Repeat(" ", gap) + lang
}

func (m *Model) renderDocument() string {
	page := m.page.View()
	if !m.store.SidebarOpen() {
		return page
	}
	side := m.sidebar.View(m.store, m.searching, m.mode == modeResults)
	return lipgloss.JoinHorizontal(lipgloss.Top, side, " ", page)
}

func (m *Model) renderState(title, detail string) string {
	content := title
	if detail != "" {
		content += "\n\n" + styles.MutedStyle.Render(detail)
	}
	box := styles.StateBoxStyle.Render(content)
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderFooter() string {
	var lines []string
	if m.store.File() != nil {
		lines = append(lines, " "+m.controls.View(m.store, m.nav))
	}
	if bar := m.taskBar.View(); bar != "" {
		lines = append(lines, bar)
	}
	lines = append(lines, " "+m.helpView.ShortHelp())
	return strings.Join(lines, "\n")
}
