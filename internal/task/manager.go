package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType 事件类型
type EventType int

const (
	EventStarted EventType = iota
	EventProgress
	EventCompleted
	EventFailed
	EventCancelled
)

// Event 任务事件
type Event struct {
	TaskID   string
	TaskName string
	Type     EventType
	Progress float64
	Message  string
	Error    error
	Time     time.Time
}

// Manager 后台任务管理器
type Manager struct {
	tasks       map[string]Task
	mu          sync.RWMutex
	eventChan   chan Event
	subscribers []chan Event
	subMu       sync.RWMutex
}

var (
	globalManager *Manager
	once          sync.Once
)

// GetManager 获取全局任务管理器（单例）
func GetManager() *Manager {
	once.Do(func() {
		globalManager = NewManager()
	})
	return globalManager
}

// NewManager 创建独立的任务管理器并启动事件分发
func NewManager() *Manager {
	m := &Manager{
		tasks:       make(map[string]Task),
		eventChan:   make(chan Event, 100),
		subscribers: make([]chan Event, 0),
	}
	go m.dispatchEvents()
	return m
}

// dispatchEvents 分发事件到所有订阅者
func (m *Manager) dispatchEvents() {
	for event := range m.eventChan {
		m.subMu.RLock()
		for _, sub := range m.subscribers {
			select {
			case sub <- event:
			default:
				// 订阅者通道已满，跳过
			}
		}
		m.subMu.RUnlock()
	}
}

// Submit 提交任务并在后台运行
func (m *Manager) Submit(task Task) string {
	m.mu.Lock()
	m.tasks[task.ID()] = task
	m.mu.Unlock()

	m.emitEvent(Event{
		TaskID:   task.ID(),
		TaskName: task.Name(),
		Type:     EventStarted,
		Message:  "submitted",
		Time:     time.Now(),
	})

	go m.runTask(task)

	return task.ID()
}

// runTask 运行任务
func (m *Manager) runTask(task Task) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cs, ok := task.(cancelSetter); ok {
		cs.SetCancelFunc(cancel)
	}

	err := task.Run(ctx)

	event := Event{
		TaskID:   task.ID(),
		TaskName: task.Name(),
		Time:     time.Now(),
	}
	switch {
	case task.Status() == StatusCancelled:
		event.Type = EventCancelled
		event.Message = "cancelled"
	case err != nil:
		event.Type = EventFailed
		event.Error = err
		event.Message = err.Error()
	default:
		event.Type = EventCompleted
		event.Progress = 100
		event.Message = "completed"
	}
	m.emitEvent(event)
}

// emitEvent 发送事件
func (m *Manager) emitEvent(event Event) {
	select {
	case m.eventChan <- event:
	default:
		// 事件通道已满，跳过
	}
}

// EmitProgress 发送进度事件（供任务调用）
func (m *Manager) EmitProgress(taskID, taskName string, progress float64, message string) {
	m.emitEvent(Event{
		TaskID:   taskID,
		TaskName: taskName,
		Type:     EventProgress,
		Progress: progress,
		Message:  message,
		Time:     time.Now(),
	})
}

// Cancel 取消任务
func (m *Manager) Cancel(taskID string) {
	m.mu.RLock()
	task, exists := m.tasks[taskID]
	m.mu.RUnlock()

	if exists {
		task.Cancel()
	}
}

// CancelActive 取消所有未结束的任务，返回取消数量
func (m *Manager) CancelActive() int {
	tasks := m.ListActiveTasks()
	for _, t := range tasks {
		t.Cancel()
	}
	return len(tasks)
}

// GetTask 获取任务
func (m *Manager) GetTask(taskID string) Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tasks[taskID]
}

// ListActiveTasks 列出活跃任务
func (m *Manager) ListActiveTasks() []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := make([]Task, 0)
	for _, task := range m.tasks {
		if !task.Status().Finished() {
			active = append(active, task)
		}
	}
	return active
}

// Subscribe 订阅事件
func (m *Manager) Subscribe() <-chan Event {
	ch := make(chan Event, 50)
	m.subMu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.subMu.Unlock()
	return ch
}

// Unsubscribe 取消订阅
func (m *Manager) Unsubscribe(ch <-chan Event) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(sub)
			break
		}
	}
}

// CleanupCompleted 清理已结束的任务
func (m *Manager) CleanupCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, task := range m.tasks {
		if task.Status().Finished() {
			delete(m.tasks, id)
		}
	}
}

// GenerateTaskID 生成任务 ID
func GenerateTaskID() string {
	return uuid.New().String()[:8]
}
