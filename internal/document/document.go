// Package document 封装 PDF 的加载与文本层提取（基于 ledongthuc/pdf）
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ledongthuc/pdf"
)

// 默认页面尺寸（US Letter，单位 pt），MediaBox 缺失时使用
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

var (
	// ErrPageOutOfRange 页码越界
	ErrPageOutOfRange = errors.New("page index out of range")
	// ErrEmptyDocument 文件内容为空
	ErrEmptyDocument = errors.New("empty document")
)

// Document 表示一个已加载的 PDF 文件（整个文件保存在内存中）
type Document struct {
	name   string
	size   int64
	reader *pdf.Reader

	// ledongthuc/pdf 的 Reader 不保证并发安全，所有访问都经过 mu
	mu   sync.Mutex
	runs map[int][]Run
}

// Open 从磁盘读取并加载 PDF
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(filepath.Base(path), data)
}

// Load 从内存中的二进制内容加载 PDF
func Load(name string, data []byte) (doc *Document, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	// 解析器遇到损坏的文件可能直接 panic
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("parse %s: %v", name, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return &Document{
		name:   name,
		size:   int64(len(data)),
		reader: reader,
		runs:   make(map[int][]Run),
	}, nil
}

// Name 返回文件名
func (d *Document) Name() string {
	return d.name
}

// Size 返回文件字节数
func (d *Document) Size() int64 {
	return d.size
}

// SizeMB 返回以 MB 计的文件大小
func (d *Document) SizeMB() float64 {
	return float64(d.size) / 1024 / 1024
}

// NumPages 返回页数
func (d *Document) NumPages() int {
	if d == nil || d.reader == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reader.NumPage()
}

// PageSize 返回页面 MediaBox 的宽高（pt）
func (d *Document) PageSize(pageIndex int) (width, height float64) {
	width, height = DefaultPageWidth, DefaultPageHeight
	if err := d.checkPage(pageIndex); err != nil {
		return width, height
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			width, height = DefaultPageWidth, DefaultPageHeight
		}
	}()

	box := d.reader.Page(pageIndex + 1).V.Key("MediaBox")
	if box.Len() != 4 {
		return width, height
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w > 0 && h > 0 {
		width, height = w, h
	}
	return width, height
}

// TextRuns 提取某一页的文本段（按内容流顺序），结果按页缓存
func (d *Document) TextRuns(ctx context.Context, pageIndex int) ([]Run, error) {
	if err := d.checkPage(pageIndex); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if runs, ok := d.runs[pageIndex]; ok {
		return runs, nil
	}

	glyphs, err := d.pageGlyphs(pageIndex)
	if err != nil {
		return nil, err
	}

	runs := groupRuns(glyphs)
	d.runs[pageIndex] = runs
	return runs, nil
}

// pageGlyphs 读取页面内容流中的字形，调用方需持有 mu
func (d *Document) pageGlyphs(pageIndex int) (glyphs []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			glyphs = nil
			err = fmt.Errorf("extract page %d: %v", pageIndex+1, r)
		}
	}()

	page := d.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("extract page %d: page object missing", pageIndex+1)
	}
	return page.Content().Text, nil
}

func (d *Document) checkPage(pageIndex int) error {
	if d == nil || d.reader == nil {
		return ErrEmptyDocument
	}
	if pageIndex < 0 || pageIndex >= d.NumPages() {
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, pageIndex)
	}
	return nil
}
