/*
Package queue provides SyncPriorityQueue, a closable, optionally bounded,
max-priority queue for handing work between goroutines.

# Operations

Push and Pull promise to accept or return a value. When they cannot, because
the queue was closed (and, for Pull, drained), they return an error that
matches types.ErrQueueClosed:

	if err := q.Push(job); errors.Is(err, types.ErrQueueClosed) {
		// producer outlived the queue
	}

The remaining operations report boundary conditions as a Status and never
return errors:

	TryPush, NonblockingPush   Success | Full | Closed
	TryPull, NonblockingPull   Success | Empty | Closed
	WaitPull                   Success | Closed
	PullFor, PullUntil         Success | Closed | Timeout

# Closing

Close is one-way and idempotent. It rejects further pushes and wakes every
blocked goroutine; elements already queued stay pullable, so consumers
drain the queue and stop at the first Closed:

	for {
		v, st := q.WaitPull()
		if st == queue.Closed {
			return
		}
		handle(v)
	}

# Ordering

Pull returns a greatest element under the queue ordering: cmp.Less for New,
the supplied function for NewFunc. The order in which equal elements are
returned is not specified.

# Timeouts

PullFor and PullUntil never report Timeout before the deadline as read from
the queue clock. No upper bound on the wake-up delay is promised.
*/
package queue
