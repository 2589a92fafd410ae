// Package store 保存查看器的全部界面状态
// Store 由顶层模型持有并以指针传给子视图，所有修改都通过 setter 完成，修改后通知订阅者。
package store

import (
	"sync"

	"github.com/google/uuid"

	"pdfscope/internal/document"
	"pdfscope/internal/search"
)

// Field 标识发生变化的状态字段
type Field int

const (
	FieldFile Field = iota
	FieldNumPages
	FieldCurrentPage
	FieldScale
	FieldSearchQuery
	FieldMatches
	FieldActiveIndex
	FieldSidebar
	FieldLoadError
)

// String 返回字段名
func (f Field) String() string {
	switch f {
	case FieldFile:
		return "file"
	case FieldNumPages:
		return "numPages"
	case FieldCurrentPage:
		return "currentPage"
	case FieldScale:
		return "scale"
	case FieldSearchQuery:
		return "searchQuery"
	case FieldMatches:
		return "matches"
	case FieldActiveIndex:
		return "activeIndex"
	case FieldSidebar:
		return "sidebar"
	case FieldLoadError:
		return "loadError"
	default:
		return "unknown"
	}
}

// Listener 状态变化回调
type Listener func(field Field, s *Store)

// Store 应用状态
type Store struct {
	mu sync.RWMutex

	file        *document.Document
	numPages    int
	currentPage int
	scale       float64
	searchQuery string
	matches     []search.Match
	activeIndex int
	sidebarOpen bool
	loadErr     error

	subMu     sync.RWMutex
	listeners map[string]Listener
	order     []string
}

// New 创建状态，scale 为初始缩放比例（通常来自持久化偏好）
func New(scale float64) *Store {
	return &Store{
		currentPage: 1,
		scale:       scale,
		activeIndex: search.NoActiveMatch,
		sidebarOpen: true,
		listeners:   make(map[string]Listener),
	}
}

// Subscribe 注册监听器，返回订阅 ID
func (s *Store) Subscribe(fn Listener) string {
	id := uuid.New().String()
	s.subMu.Lock()
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()
	return id
}

// Unsubscribe 取消订阅
func (s *Store) Unsubscribe(id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, ok := s.listeners[id]; !ok {
		return
	}
	delete(s.listeners, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// notify 在不持有状态锁的情况下通知所有监听器
func (s *Store) notify(fields ...Field) {
	s.subMu.RLock()
	fns := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.subMu.RUnlock()

	for _, f := range fields {
		for _, fn := range fns {
			fn(f, s)
		}
	}
}

// ========== 读取 ==========

// File 返回当前文档
func (s *Store) File() *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// NumPages 返回页数
func (s *Store) NumPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.numPages
}

// CurrentPage 返回当前页（1-based）
func (s *Store) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// Scale 返回缩放比例
func (s *Store) Scale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

// SearchQuery 返回搜索串
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// Matches 返回全局匹配列表的副本
func (s *Store) Matches() []search.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]search.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// MatchCount 返回匹配数
func (s *Store) MatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// ActiveIndex 返回激活匹配索引，无激活时为 search.NoActiveMatch
func (s *Store) ActiveIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeIndex
}

// ActiveMatch 返回激活的匹配，仅在索引有效时解引用
func (s *Store) ActiveMatch() (search.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !search.InRange(s.matches, s.activeIndex) {
		return search.Match{}, false
	}
	return s.matches[s.activeIndex], true
}

// SidebarOpen 侧边栏是否展开
func (s *Store) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// LoadError 返回文档加载错误
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// ========== 修改 ==========

// SetFile 切换文档，并重置页码与搜索状态
func (s *Store) SetFile(doc *document.Document) {
	s.mu.Lock()
	s.file = doc
	s.numPages = doc.NumPages()
	s.currentPage = 1
	s.searchQuery = ""
	s.matches = nil
	s.activeIndex = search.NoActiveMatch
	s.loadErr = nil
	s.mu.Unlock()

	s.notify(FieldFile, FieldNumPages, FieldCurrentPage, FieldSearchQuery, FieldMatches, FieldActiveIndex, FieldLoadError)
}

// SetLoadError 记录加载失败，同时清空文档
func (s *Store) SetLoadError(err error) {
	s.mu.Lock()
	s.file = nil
	s.numPages = 0
	s.currentPage = 1
	s.searchQuery = ""
	s.matches = nil
	s.activeIndex = search.NoActiveMatch
	s.loadErr = err
	s.mu.Unlock()

	s.notify(FieldFile, FieldNumPages, FieldCurrentPage, FieldSearchQuery, FieldMatches, FieldActiveIndex, FieldLoadError)
}

// SetNumPages 设置页数
func (s *Store) SetNumPages(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	s.numPages = n
	s.mu.Unlock()
	s.notify(FieldNumPages)
}

// SetCurrentPage 设置当前页，不做范围校验（由 nav 负责）
func (s *Store) SetCurrentPage(page int) {
	s.mu.Lock()
	if s.currentPage == page {
		s.mu.Unlock()
		return
	}
	s.currentPage = page
	s.mu.Unlock()
	s.notify(FieldCurrentPage)
}

// SetScale 设置缩放比例
func (s *Store) SetScale(scale float64) {
	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()
	s.notify(FieldScale)
}

// SetSearchQuery 设置搜索串
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	if s.searchQuery == query {
		s.mu.Unlock()
		return
	}
	s.searchQuery = query
	s.mu.Unlock()
	s.notify(FieldSearchQuery)
}

// SetMatches 整体替换匹配列表
// 列表为空时激活索引重置为哨兵值；越界时夹到最后一项，保证非空列表下索引有效。
func (s *Store) SetMatches(matches []search.Match) {
	s.mu.Lock()
	s.matches = matches
	activeChanged := false
	switch {
	case len(matches) == 0:
		activeChanged = s.activeIndex != search.NoActiveMatch
		s.activeIndex = search.NoActiveMatch
	case s.activeIndex >= len(matches):
		s.activeIndex = len(matches) - 1
		activeChanged = true
	}
	s.mu.Unlock()

	if activeChanged {
		s.notify(FieldMatches, FieldActiveIndex)
		return
	}
	s.notify(FieldMatches)
}

// SetActiveIndex 设置激活匹配索引；越界值（哨兵除外）被忽略并返回 false
func (s *Store) SetActiveIndex(index int) bool {
	s.mu.Lock()
	if index != search.NoActiveMatch && !search.InRange(s.matches, index) {
		s.mu.Unlock()
		return false
	}
	s.activeIndex = index
	s.mu.Unlock()
	s.notify(FieldActiveIndex)
	return true
}

// ToggleSidebar 切换侧边栏
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	s.mu.Unlock()
	s.notify(FieldSidebar)
}

// SetSidebarOpen 设置侧边栏展开状态
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	s.sidebarOpen = open
	s.mu.Unlock()
	s.notify(FieldSidebar)
}
