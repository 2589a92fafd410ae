package task

import (
	"context"
	"sync"
)

// Status 扫描任务状态
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
	StatusCancelled
)

var statusNames = [...]string{"pending", "scanning", "done", "failed", "cancelled"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Finished 是否已结束（完成、失败或取消）
func (s Status) Finished() bool {
	return s >= StatusCompleted
}

// Task 交给 Manager 运行的后台任务
type Task interface {
	ID() string
	Name() string
	Status() Status
	Progress() float64 // 0-100
	Message() string
	Run(ctx context.Context) error
	Cancel()
}

// cancelSetter 由需要被 Manager 取消的任务实现
type cancelSetter interface {
	SetCancelFunc(fn context.CancelFunc)
}

// BaseTask 保存任务的状态、进度和取消函数，具体任务嵌入它
type BaseTask struct {
	id   string
	name string

	mu        sync.RWMutex
	status    Status
	progress  float64
	message   string
	err       error
	cancelFn  context.CancelFunc
	cancelled bool
}

func NewBaseTask(id, name string) *BaseTask {
	return &BaseTask{id: id, name: name}
}

func (t *BaseTask) ID() string   { return t.id }
func (t *BaseTask) Name() string { return t.name }

func (t *BaseTask) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *BaseTask) Progress() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress
}

func (t *BaseTask) Message() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.message
}

// Error 任务失败的原因
func (t *BaseTask) Error() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

// SetStatus 切换状态并更新消息；取消之后只接受 StatusCancelled
func (t *BaseTask) SetStatus(status Status, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled && status != StatusCancelled {
		return
	}
	t.status = status
	t.message = message
	if status == StatusCompleted {
		t.progress = 100
	}
}

// Report 更新扫描进度
func (t *BaseTask) Report(progress float64, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = progress
	t.message = message
}

// Fail 记录错误并标记为失败
func (t *BaseTask) Fail(err error, message string) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	t.SetStatus(StatusFailed, message)
}

// SetCancelFunc 设置取消函数；若任务已被取消则立即调用
func (t *BaseTask) SetCancelFunc(fn context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelFn = fn
	if t.cancelled && fn != nil {
		fn()
	}
}

// Cancel 取消尚未结束的任务
func (t *BaseTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Finished() {
		return
	}
	t.cancelled = true
	t.status = StatusCancelled
	if t.cancelFn != nil {
		t.cancelFn()
	}
}
