package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pdfscope/internal/i18n"
	"pdfscope/internal/nav"
	"pdfscope/internal/store"
	"pdfscope/internal/ui/styles"
)

// Controls 底部翻页与缩放控件
type Controls struct {
	pageInput textinput.Model
	editing   bool
	rejected  bool // 上一次输入的页码无效
}

// NewControls 创建控件
func NewControls() *Controls {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 6
	ti.Width = 6
	ti.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	return &Controls{pageInput: ti}
}

// StartEditing 进入页码输入状态，预填当前页
func (c *Controls) StartEditing(current int) tea.Cmd {
	c.editing = true
	c.rejected = false
	c.pageInput.SetValue(strconv.Itoa(current))
	c.pageInput.CursorEnd()
	return c.pageInput.Focus()
}

// StopEditing 退出页码输入状态
func (c *Controls) StopEditing() {
	c.editing = false
	c.pageInput.Blur()
}

// Editing 是否正在输入页码
func (c *Controls) Editing() bool {
	return c.editing
}

// Submit 提交页码输入，无效时页码保持不变
func (c *Controls) Submit(ctrl *nav.Controller) int {
	page, ok := ctrl.SubmitPageInput(c.pageInput.Value())
	c.rejected = !ok
	c.StopEditing()
	return page
}

// Update 把按键交给页码输入框
func (c *Controls) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.pageInput, cmd = c.pageInput.Update(msg)
	return cmd
}

// View 渲染控件
func (c *Controls) View(st *store.Store, ctrl *nav.Controller) string {
	prev := styles.MutedStyle.Render("◀")
	if ctrl.CanPrevPage() {
		prev = styles.KeyStyle.Render("◀")
	}
	next := styles.MutedStyle.Render("▶")
	if ctrl.CanNextPage() {
		next = styles.KeyStyle.Render("▶")
	}

	page := styles.TextStyle.Render(strconv.Itoa(st.CurrentPage()))
	if c.editing {
		page = c.pageInput.View()
	}

	line := fmt.Sprintf("%s %s [%s] %s %d %s   %s %s",
		prev,
		styles.StatusBarLabelStyle.Render(i18n.T("page")),
		page,
		styles.MutedStyle.Render(i18n.T("page_of")),
		st.NumPages(),
		next,
		styles.StatusBarLabelStyle.Render(i18n.T("zoom")),
		styles.TextStyle.Render(fmt.Sprintf("%.0f%%", st.Scale()*100)),
	)

	if st.Scale() <= nav.MinScale || st.Scale() >= nav.MaxScale {
		line += styles.MutedStyle.Render(fmt.Sprintf(" (%.0f%%-%.0f%%)", nav.MinScale*100, nav.MaxScale*100))
	}
	if c.rejected {
		line += "  " + styles.WarningStyle.Render(i18n.T("invalid_page"))
	}
	return line
}
