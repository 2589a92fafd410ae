// Package nav 负责匹配导航、翻页与缩放
package nav

import (
	"pdfscope/internal/search"
	"pdfscope/internal/store"
)

// ScrollTarget 描述导航后需要滚动到视口中央的匹配
type ScrollTarget struct {
	Index int          // 全局匹配索引
	Match search.Match // 匹配本身
	Page  int          // 所在页（1-based）
}

// Controller 匹配导航状态机：{无激活匹配, 激活第 i 个匹配}
type Controller struct {
	store *store.Store
}

// NewController 创建导航控制器
func NewController(s *store.Store) *Controller {
	return &Controller{store: s}
}

// Next 跳到下一个匹配，末尾回绕到开头；没有匹配时不做任何事
func (c *Controller) Next() (ScrollTarget, bool) {
	count := c.store.MatchCount()
	if count == 0 {
		return ScrollTarget{}, false
	}
	return c.focus((c.store.ActiveIndex() + 1) % count)
}

// Prev 跳到上一个匹配，开头回绕到末尾
func (c *Controller) Prev() (ScrollTarget, bool) {
	count := c.store.MatchCount()
	if count == 0 {
		return ScrollTarget{}, false
	}
	i := c.store.ActiveIndex()
	if i == search.NoActiveMatch {
		return c.focus(count - 1)
	}
	return c.focus((i - 1 + count) % count)
}

// Select 从结果列表中选中指定匹配，越界时忽略
func (c *Controller) Select(index int) (ScrollTarget, bool) {
	if index < 0 || index >= c.store.MatchCount() {
		return ScrollTarget{}, false
	}
	return c.focus(index)
}

// Current 返回当前激活匹配的滚动目标
func (c *Controller) Current() (ScrollTarget, bool) {
	m, ok := c.store.ActiveMatch()
	if !ok {
		return ScrollTarget{}, false
	}
	return ScrollTarget{Index: c.store.ActiveIndex(), Match: m, Page: m.PageIndex + 1}, true
}

// ApplyResults 应用一次完整扫描的结果：非空时激活第一个匹配
func (c *Controller) ApplyResults(matches []search.Match) (ScrollTarget, bool) {
	c.store.SetMatches(matches)
	if len(matches) == 0 {
		c.store.SetActiveIndex(search.NoActiveMatch)
		return ScrollTarget{}, false
	}
	return c.focus(0)
}

// ClearQuery 清空搜索：匹配清空、激活索引回到哨兵、回到第 1 页
func (c *Controller) ClearQuery() {
	c.store.SetSearchQuery("")
	c.store.SetMatches(nil)
	c.store.SetActiveIndex(search.NoActiveMatch)
	c.store.SetCurrentPage(1)
}

// focus 激活第 index 个匹配并把当前页切到它所在页
func (c *Controller) focus(index int) (ScrollTarget, bool) {
	if !c.store.SetActiveIndex(index) {
		return ScrollTarget{}, false
	}
	m, ok := c.store.ActiveMatch()
	if !ok {
		return ScrollTarget{}, false
	}
	c.store.SetCurrentPage(m.PageIndex + 1)
	return ScrollTarget{Index: index, Match: m, Page: m.PageIndex + 1}, true
}
