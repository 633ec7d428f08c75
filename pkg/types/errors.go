// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrQueueClosed indicates a push into a closed queue, or a pull from a
	// queue that is both closed and empty
	ErrQueueClosed = errors.New("queue is closed")

	// ErrWorkerPoolFull indicates the worker pool backlog is at capacity
	ErrWorkerPoolFull = errors.New("worker pool is full")

	// ErrPoolNotRunning indicates the worker pool has not been started
	ErrPoolNotRunning = errors.New("worker pool is not running")

	// ErrPoolClosed indicates the worker pool no longer accepts tasks
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = errors.New("task cannot be nil")
)

// QueueError is returned by the unconditional queue operations (push and
// pull) when they cannot complete their contract
type QueueError struct {
	// Op is the name of the operation that failed, e.g. "push" or "pull"
	Op string

	// Cause is the underlying error
	Cause error
}

// NewQueueError creates a new queue error
func NewQueueError(op string, cause error) *QueueError {
	return &QueueError{
		Op:    op,
		Cause: cause,
	}
}

// Error implements the error interface
func (e *QueueError) Error() string {
	return fmt.Sprintf("queue %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying error
func (e *QueueError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *QueueError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// RetryableError marks a task failure the worker pool may re-queue.
// Re-queued tasks go back into the backlog at once.
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool
}

// NewRetryableError marks err as retryable
func NewRetryableError(err error) *RetryableError {
	return &RetryableError{
		Err:       err,
		Retryable: true,
	}
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return false
}
