package task

import (
	"context"
	"errors"
	"fmt"

	"pdfscope/internal/search"
)

// ScanTask 全文搜索任务
type ScanTask struct {
	*BaseTask
	seq     uint64
	query   string
	src     search.TextSource
	engine  *search.Engine
	manager *Manager
	matches []search.Match
	done    chan struct{}
}

// NewScanTask 创建搜索任务，seq 为发起时的搜索序号
func NewScanTask(m *Manager, engine *search.Engine, src search.TextSource, query string, seq uint64) *ScanTask {
	return &ScanTask{
		BaseTask: NewBaseTask(GenerateTaskID(), fmt.Sprintf("Search %q", query)),
		seq:      seq,
		query:    query,
		src:      src,
		engine:   engine,
		manager:  m,
		done:     make(chan struct{}),
	}
}

// Seq 返回发起时的搜索序号
func (t *ScanTask) Seq() uint64 {
	return t.seq
}

// Query 返回查询字符串
func (t *ScanTask) Query() string {
	return t.query
}

// Done 任务结束时关闭
func (t *ScanTask) Done() <-chan struct{} {
	return t.done
}

// Matches 返回扫描结果（任务结束后有效）
func (t *ScanTask) Matches() []search.Match {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.matches
}

// Wait 阻塞直到任务结束或 ctx 取消
func (t *ScanTask) Wait(ctx context.Context) ([]search.Match, error) {
	select {
	case <-t.done:
		return t.Matches(), t.Error()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run 执行扫描
func (t *ScanTask) Run(ctx context.Context) error {
	defer close(t.done)

	t.SetStatus(StatusRunning, "Searching...")

	matches, err := t.engine.Scan(ctx, t.src, t.query, func(done, total int) {
		progress := 100 * float64(done) / float64(total)
		msg := fmt.Sprintf("%d/%d pages", done, total)
		t.Report(progress, msg)
		if t.manager != nil {
			t.manager.EmitProgress(t.ID(), t.Name(), progress, msg)
		}
	})

	t.mu.Lock()
	t.matches = matches
	t.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			t.SetStatus(StatusCancelled, "Cancelled")
			return err
		}
		t.Fail(err, "Search failed: "+err.Error())
		return err
	}

	t.SetStatus(StatusCompleted, fmt.Sprintf("%d matches", len(matches)))
	return nil
}
