package worker

import (
	"context"
	"time"

	"github.com/jzx17/syncpq/pkg/types"
)

// PriorityTask is a task queued in the pool backlog
type PriorityTask struct {
	task       types.Task
	priority   int       // higher value means higher priority
	SubmitTime time.Time // FIFO ordering within same priority
	attempts   int       // executions that ended in a retried failure
}

// NewPriorityTask creates a priority task wrapper
func NewPriorityTask(task types.Task, priority int) *PriorityTask {
	return NewPriorityTaskWithClock(task, priority, types.NewRealClock())
}

// NewPriorityTaskWithClock creates a priority task wrapper with custom clock
func NewPriorityTaskWithClock(task types.Task, priority int, clock types.Clock) *PriorityTask {
	if clock == nil {
		clock = types.NewRealClock()
	}
	return &PriorityTask{
		task:       task,
		priority:   priority,
		SubmitTime: clock.Now(),
	}
}

// Priority returns the priority the task was submitted with
func (pt *PriorityTask) Priority() int {
	return pt.priority
}

// Attempts returns how many times the task has been put back for a retry
func (pt *PriorityTask) Attempts() int {
	return pt.attempts
}

// ID returns task ID
func (pt *PriorityTask) ID() string {
	return pt.task.ID()
}

// Execute executes the task
func (pt *PriorityTask) Execute(ctx context.Context) error {
	return pt.task.Execute(ctx)
}

// priorityTaskLess orders the backlog: higher priority first, then earlier submit
func priorityTaskLess(a, b *PriorityTask) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.SubmitTime.After(b.SubmitTime)
}
