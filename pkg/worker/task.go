// Package worker provides a priority worker pool built on queue.SyncPriorityQueue
package worker

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"
)

// taskIDCounter is the global task ID counter
var taskIDCounter int64

// BasicTask is the basic implementation of types.Task
type BasicTask struct {
	id       string
	priority int
	fn       func(ctx context.Context) error
}

// NewBasicTask creates a task with a generated ID and priority 0
func NewBasicTask(fn func(ctx context.Context) error) *BasicTask {
	return NewBasicTaskWithPriority(fn, 0)
}

// NewBasicTaskWithPriority creates a task with a generated ID
func NewBasicTaskWithPriority(fn func(ctx context.Context) error, priority int) *BasicTask {
	id := atomic.AddInt64(&taskIDCounter, 1)
	return &BasicTask{
		id:       fmt.Sprintf("task-%d", id),
		priority: priority,
		fn:       fn,
	}
}

// NewBasicTaskWithID creates a task with custom ID
func NewBasicTaskWithID(id string, fn func(ctx context.Context) error) *BasicTask {
	return &BasicTask{
		id: id,
		fn: fn,
	}
}

// Execute executes the task
func (t *BasicTask) Execute(ctx context.Context) error {
	if t.fn == nil {
		return errors.Errorf("task %s has no execution function", t.id)
	}
	return t.fn(ctx)
}

// ID returns the task ID
func (t *BasicTask) ID() string {
	return t.id
}

// Priority returns the task priority
func (t *BasicTask) Priority() int {
	return t.priority
}

// SetPriority sets the task priority
func (t *BasicTask) SetPriority(priority int) {
	t.priority = priority
}
