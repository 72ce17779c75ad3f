package web

import "sync"

// Toast is one pending user notification.
type Toast struct {
	Level   string // "info", "success", "error"
	Message string
}

// ToastQueue collects notifications raised by the controller until the next
// page render drains them. It satisfies admin.Notifier.
type ToastQueue struct {
	mu      sync.Mutex
	pending []Toast
}

func NewToastQueue() *ToastQueue {
	return &ToastQueue{}
}

func (q *ToastQueue) push(level, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Toast{Level: level, Message: msg})
}

func (q *ToastQueue) Info(msg string)    { q.push("info", msg) }
func (q *ToastQueue) Success(msg string) { q.push("success", msg) }
func (q *ToastQueue) Error(msg string)   { q.push("error", msg) }

// Drain returns and clears the pending notifications.
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}
