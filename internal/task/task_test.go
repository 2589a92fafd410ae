package task

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"pdfscope/internal/document"
	"pdfscope/internal/search"
)

type pagesSource [][]string

func (p pagesSource) NumPages() int { return len(p) }

func (p pagesSource) TextRuns(_ context.Context, pageIndex int) ([]document.Run, error) {
	runs := make([]document.Run, 0, len(p[pageIndex]))
	for _, s := range p[pageIndex] {
		runs = append(runs, document.Run{Text: s})
	}
	return runs, nil
}

// blockingSource 在 ctx 取消前一直阻塞
type blockingSource struct {
	started chan struct{}
}

func (b *blockingSource) NumPages() int { return 3 }

func (b *blockingSource) TextRuns(ctx context.Context, _ int) ([]document.Run, error) {
	select {
	case <-b.started:
	default:
		close(b.started)
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func quietEngine() *search.Engine {
	return search.NewEngine(log.New(io.Discard, "", 0))
}

func TestBaseTask_StatusTransitions(t *testing.T) {
	bt := NewBaseTask("id1", "demo")
	if bt.Status() != StatusPending {
		t.Errorf("Expected Pending, got %s", bt.Status())
	}

	bt.SetStatus(StatusRunning, "Searching...")
	bt.Report(50, "1/2 pages")
	if bt.Progress() != 50 || bt.Message() != "1/2 pages" {
		t.Errorf("Expected progress 50 with page message, got %v %q", bt.Progress(), bt.Message())
	}

	bt.Cancel()
	if bt.Status() != StatusCancelled {
		t.Errorf("Expected Cancelled, got %s", bt.Status())
	}

	// 已取消的任务不能再被标记为完成
	bt.SetStatus(StatusCompleted, "2 matches")
	if bt.Status() != StatusCancelled {
		t.Errorf("Expected status to stay Cancelled, got %s", bt.Status())
	}
}

func TestBaseTask_CancelBeforeCancelFunc(t *testing.T) {
	bt := NewBaseTask("id2", "demo")
	bt.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	bt.SetCancelFunc(cancel)

	select {
	case <-ctx.Done():
	default:
		t.Error("Expected late cancel func to be invoked")
	}
}

func TestScanTask_Completes(t *testing.T) {
	m := NewManager()
	events := m.Subscribe()
	defer m.Unsubscribe(events)

	src := pagesSource{{"the cat"}, {"a dog", "cat"}}
	st := NewScanTask(m, quietEngine(), src, "cat, dog", 7)
	m.Submit(st)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	matches, err := st.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
	if st.Seq() != 7 || st.Query() != "cat, dog" {
		t.Errorf("Unexpected task identity: seq=%d query=%q", st.Seq(), st.Query())
	}
	if st.Progress() != 100 {
		t.Errorf("Expected progress 100, got %v", st.Progress())
	}

	sawProgress := false
	for {
		select {
		case ev := <-events:
			if ev.TaskID != st.ID() {
				continue
			}
			if ev.Type == EventProgress {
				sawProgress = true
			}
			if ev.Type == EventCompleted {
				if !sawProgress {
					t.Error("Expected progress events before completion")
				}
				return
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for completion event")
		}
	}
}

func TestScanTask_Cancel(t *testing.T) {
	m := NewManager()
	src := &blockingSource{started: make(chan struct{})}
	st := NewScanTask(m, quietEngine(), src, "cat", 1)
	m.Submit(st)

	<-src.started
	if n := m.CancelActive(); n != 1 {
		t.Errorf("Expected 1 cancelled task, got %d", n)
	}

	select {
	case <-st.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cancelled task")
	}

	if st.Status() != StatusCancelled {
		t.Errorf("Expected Cancelled, got %s", st.Status())
	}
	if len(m.ListActiveTasks()) != 0 {
		t.Error("Expected no active tasks after cancel")
	}

	m.CleanupCompleted()
	if m.GetTask(st.ID()) != nil {
		t.Error("Expected finished task to be cleaned up")
	}
}

func TestGenerateTaskID(t *testing.T) {
	a, b := GenerateTaskID(), GenerateTaskID()
	if len(a) != 8 || a == b {
		t.Errorf("Expected distinct 8-char ids, got %q and %q", a, b)
	}
}
