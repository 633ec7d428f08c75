// Package types defines core interfaces and types shared by the queue and
// the worker pool
package types

import (
	"context"
)

// Task defines the task interface
type Task interface {
	// Execute executes the task
	Execute(ctx context.Context) error

	// ID returns the task ID (optional, for tracking)
	ID() string

	// Priority returns the task priority, higher runs first
	Priority() int
}

// ErrorHandler defines an error handling function
type ErrorHandler func(error) error

// WorkerPoolStats defines basic statistics for worker pools
type WorkerPoolStats struct {
	// PoolSize is the size of the pool
	PoolSize int

	// ActiveWorkers is the number of workers currently executing a task
	ActiveWorkers int

	// QueueSize is the current number of tasks in the backlog
	QueueSize int

	// QueueCapacity is the capacity of the backlog, 0 when unbounded
	QueueCapacity int

	// Completed is the number of tasks that finished without error
	Completed int64

	// Failed is the number of task executions that returned an error
	Failed int64

	// Retried is the number of tasks put back into the backlog
	Retried int64
}

// PoolState defines the lifecycle state of a worker pool
type PoolState int32

const (
	// PoolStateCreated pool has been created but not started
	PoolStateCreated PoolState = iota
	// PoolStateRunning pool is running
	PoolStateRunning
	// PoolStateClosed pool has been shut down
	PoolStateClosed
)

// String returns the string representation of PoolState
func (ps PoolState) String() string {
	switch ps {
	case PoolStateCreated:
		return "Created"
	case PoolStateRunning:
		return "Running"
	case PoolStateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}
