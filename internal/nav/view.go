package nav

import (
	"math"
	"strconv"
	"strings"
)

// 缩放范围与步长
const (
	MinScale     = 0.7
	MaxScale     = 1.0
	ScaleStep    = 0.1
	DefaultScale = 0.9
)

// ClampScale 把缩放比例夹到 [MinScale, MaxScale] 并对齐到两位小数
func ClampScale(scale float64) float64 {
	if math.IsNaN(scale) || scale <= 0 {
		return DefaultScale
	}
	scale = math.Round(scale*100) / 100
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}

// ParsePageInput 解析用户输入的页码，非数字或不在 [1, numPages] 内时返回 false
func ParsePageInput(text string, numPages int) (int, bool) {
	page, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	if page < 1 || page > numPages {
		return 0, false
	}
	return page, true
}

// GoToPage 跳到指定页，越界时拒绝并保持原页
func (c *Controller) GoToPage(page int) bool {
	if page < 1 || page > c.store.NumPages() {
		return false
	}
	c.store.SetCurrentPage(page)
	return true
}

// SubmitPageInput 处理页码输入框提交，返回最终显示的页码
// 输入无效时回退到上一次有效页码。
func (c *Controller) SubmitPageInput(text string) (int, bool) {
	page, ok := ParsePageInput(text, c.store.NumPages())
	if !ok {
		return c.store.CurrentPage(), false
	}
	c.store.SetCurrentPage(page)
	return page, true
}

// PrevPage 上一页，已在第一页时不动
func (c *Controller) PrevPage() bool {
	return c.GoToPage(c.store.CurrentPage() - 1)
}

// NextPage 下一页，已在最后一页时不动
func (c *Controller) NextPage() bool {
	return c.GoToPage(c.store.CurrentPage() + 1)
}

// CanPrevPage / CanNextPage 用于控制栏按钮的禁用状态
func (c *Controller) CanPrevPage() bool {
	return c.store.CurrentPage() > 1
}

func (c *Controller) CanNextPage() bool {
	return c.store.CurrentPage() < c.store.NumPages()
}

// ZoomIn 放大一级，到上限后不再变化
func (c *Controller) ZoomIn() float64 {
	return c.setScale(c.store.Scale() + ScaleStep)
}

// ZoomOut 缩小一级，到下限后不再变化
func (c *Controller) ZoomOut() float64 {
	return c.setScale(c.store.Scale() - ScaleStep)
}

// ResetZoom 恢复默认缩放
func (c *Controller) ResetZoom() float64 {
	return c.setScale(DefaultScale)
}

func (c *Controller) setScale(scale float64) float64 {
	scale = ClampScale(scale)
	if scale != c.store.Scale() {
		c.store.SetScale(scale)
	}
	return scale
}
