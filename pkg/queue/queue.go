package queue

import (
	"cmp"
	"container/heap"
	"sync"
	"time"

	"github.com/jzx17/syncpq/pkg/types"
)

// SyncPriorityQueue is a closable, optionally bounded, max-priority queue
// shared by any number of producer and consumer goroutines.
//
// Goroutines blocked in Push, Pull, WaitPull, PullFor or PullUntil are only
// released by the condition they wait for or by Close, so the owner must
// Close the queue before abandoning it.
type SyncPriorityQueue[T any] struct {
	mu sync.Mutex

	items    entryHeap[T]
	capacity int
	closed   bool
	seq      uint64

	// notEmpty wakes pullers, notFull wakes pushers
	notEmpty signal
	notFull  signal

	// time operations
	clock types.Clock

	// statistics
	totalPushed int64
	totalPulled int64
}

// Stats contains a point-in-time snapshot of the queue
type Stats struct {
	Size        int
	Capacity    int
	Closed      bool
	TotalPushed int64
	TotalPulled int64
}

// New creates a queue ordered by the natural order of T
func New[T cmp.Ordered](opts ...Option) *SyncPriorityQueue[T] {
	return NewFunc(cmp.Less[T], opts...)
}

// NewFunc creates a queue ordered by less. less must be a strict weak
// ordering; the element for which no other element is greater is pulled first.
func NewFunc[T any](less func(a, b T) bool, opts ...Option) *SyncPriorityQueue[T] {
	if less == nil {
		panic("queue: nil less function")
	}

	cfg := newConfig(opts)

	q := &SyncPriorityQueue[T]{
		items:    entryHeap[T]{less: less},
		capacity: cfg.capacity,
		notEmpty: newSignal(),
		notFull:  newSignal(),
		clock:    cfg.clock,
	}
	if q.capacity != Unbounded {
		// capacity is a limit; append grows past the initial reservation
		q.items.items = make([]entry[T], 0, min(q.capacity, initialReserve))
	}

	return q
}

// Empty reports whether the queue holds no element
func (q *SyncPriorityQueue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len() == 0
}

// Full reports whether the queue is at capacity. Always false when unbounded.
func (q *SyncPriorityQueue[T]) Full() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.full()
}

// Size returns the number of queued elements
func (q *SyncPriorityQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Capacity returns the capacity bound, or Unbounded
func (q *SyncPriorityQueue[T]) Capacity() int {
	return q.capacity
}

// Closed reports whether Close has been called
func (q *SyncPriorityQueue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Stats returns queue statistics
func (q *SyncPriorityQueue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Stats{
		Size:        q.items.Len(),
		Capacity:    q.capacity,
		Closed:      q.closed,
		TotalPushed: q.totalPushed,
		TotalPulled: q.totalPulled,
	}
}

// Push inserts value, waiting while the queue is full. It fails with
// types.ErrQueueClosed if the queue is closed on entry or while waiting.
func (q *SyncPriorityQueue[T]) Push(value T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.full() && !q.closed {
		q.waitLocked(&q.notFull)
	}
	if q.closed {
		return types.NewQueueError("push", types.ErrQueueClosed)
	}

	q.pushLocked(value)
	return nil
}

// TryPush inserts value without waiting
func (q *SyncPriorityQueue[T]) TryPush(value T) Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return Closed
	}
	if q.full() {
		return Full
	}

	q.pushLocked(value)
	return Success
}

// NonblockingPush is TryPush
func (q *SyncPriorityQueue[T]) NonblockingPush(value T) Status {
	return q.TryPush(value)
}

// Pull removes and returns the greatest element, waiting while the queue
// is empty. It fails with types.ErrQueueClosed once the queue is closed and
// drained.
func (q *SyncPriorityQueue[T]) Pull() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 && !q.closed {
		q.waitLocked(&q.notEmpty)
	}
	if q.items.Len() == 0 {
		var zero T
		return zero, types.NewQueueError("pull", types.ErrQueueClosed)
	}

	return q.pullLocked(), nil
}

// TryPull removes and returns the greatest element without waiting
func (q *SyncPriorityQueue[T]) TryPull() (T, Status) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() == 0 {
		var zero T
		if q.closed {
			return zero, Closed
		}
		return zero, Empty
	}

	return q.pullLocked(), Success
}

// NonblockingPull is TryPull
func (q *SyncPriorityQueue[T]) NonblockingPull() (T, Status) {
	return q.TryPull()
}

// WaitPull is Pull reporting the closed-and-drained case as Closed
func (q *SyncPriorityQueue[T]) WaitPull() (T, Status) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 && !q.closed {
		q.waitLocked(&q.notEmpty)
	}
	if q.items.Len() == 0 {
		var zero T
		return zero, Closed
	}

	return q.pullLocked(), Success
}

// PullFor is WaitPull bounded by d. Timeout is returned no earlier than d
// after the call.
func (q *SyncPriorityQueue[T]) PullFor(d time.Duration) (T, Status) {
	return q.PullUntil(q.clock.Now().Add(d))
}

// PullUntil is WaitPull bounded by an absolute deadline. Timeout is
// returned only once the queue clock reads at or after deadline.
func (q *SyncPriorityQueue[T]) PullUntil(deadline time.Time) (T, Status) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Len() == 0 && !q.closed {
		remaining := deadline.Sub(q.clock.Now())
		if remaining <= 0 {
			var zero T
			return zero, Timeout
		}
		q.waitLockedFor(&q.notEmpty, remaining)
	}
	if q.items.Len() == 0 {
		var zero T
		return zero, Closed
	}

	return q.pullLocked(), Success
}

// Close stops the queue from accepting elements and wakes every waiter.
// Queued elements stay pullable. Calling Close again has no effect.
func (q *SyncPriorityQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.broadcast()
	q.notFull.broadcast()
}

func (q *SyncPriorityQueue[T]) full() bool {
	return q.capacity != Unbounded && q.items.Len() >= q.capacity
}

func (q *SyncPriorityQueue[T]) pushLocked(value T) {
	heap.Push(&q.items, entry[T]{value: value, seq: q.seq})
	q.seq++
	q.totalPushed++
	q.notEmpty.broadcast()
}

func (q *SyncPriorityQueue[T]) pullLocked() T {
	e := heap.Pop(&q.items).(entry[T])
	q.totalPulled++
	q.notFull.broadcast()
	return e.value
}

// waitLocked releases the lock until s is broadcast, then reacquires it
func (q *SyncPriorityQueue[T]) waitLocked(s *signal) {
	ch := s.wait()
	q.mu.Unlock()
	<-ch
	q.mu.Lock()
}

// waitLockedFor is waitLocked giving up after d
func (q *SyncPriorityQueue[T]) waitLockedFor(s *signal, d time.Duration) {
	ch := s.wait()
	timer := q.clock.NewTimer(d)
	q.mu.Unlock()

	select {
	case <-ch:
	case <-timer.C():
	}
	timer.Stop()

	q.mu.Lock()
}
