package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/syncpq/pkg/types"
)

// blocked asserts that ch delivers nothing for a short while
func blocked[V any](t *testing.T, ch <-chan V) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("expected call to block, it returned %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func receive[V any](t *testing.T, ch <-chan V) V {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("call did not return")
	}
	var zero V
	return zero
}

func TestSyncPriorityQueue_BlockingPush(t *testing.T) {
	t.Run("UnblockedByPull", func(t *testing.T) {
		q := New[int](WithCapacity(1))
		require.NoError(t, q.Push(1))

		done := make(chan error, 1)
		go func() {
			done <- q.Push(2)
		}()
		blocked(t, done)

		v, err := q.Pull()
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		assert.NoError(t, receive(t, done))
		assert.Equal(t, 1, q.Size())
	})

	t.Run("UnblockedByClose", func(t *testing.T) {
		q := New[int](WithCapacity(1))
		require.NoError(t, q.Push(1))

		done := make(chan error, 1)
		go func() {
			done <- q.Push(2)
		}()
		blocked(t, done)

		q.Close()

		assert.ErrorIs(t, receive(t, done), types.ErrQueueClosed)
		assert.Equal(t, 1, q.Size())
	})
}

func TestSyncPriorityQueue_BlockingPull(t *testing.T) {
	t.Run("PullUnblockedByPush", func(t *testing.T) {
		q := New[int]()

		done := make(chan int, 1)
		go func() {
			v, err := q.Pull()
			assert.NoError(t, err)
			done <- v
		}()
		blocked(t, done)

		require.NoError(t, q.Push(42))
		assert.Equal(t, 42, receive(t, done))
	})

	t.Run("PullUnblockedByClose", func(t *testing.T) {
		q := New[int]()

		done := make(chan error, 1)
		go func() {
			_, err := q.Pull()
			done <- err
		}()
		blocked(t, done)

		q.Close()
		assert.ErrorIs(t, receive(t, done), types.ErrQueueClosed)
	})

	t.Run("WaitPullUnblockedByClose", func(t *testing.T) {
		q := New[int]()

		const waiters = 4
		done := make(chan Status, waiters)
		for i := 0; i < waiters; i++ {
			go func() {
				_, st := q.WaitPull()
				done <- st
			}()
		}
		blocked(t, done)

		q.Close()
		for i := 0; i < waiters; i++ {
			assert.Equal(t, Closed, receive(t, done))
		}
	})
}

func TestSyncPriorityQueue_ProducersConsumers(t *testing.T) {
	const (
		producers   = 8
		consumers   = 4
		perProducer = 500
	)

	q := New[int](WithCapacity(16))

	var producerWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		producerWG.Add(1)
		go func(p int) {
			defer producerWG.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, q.Push(p*perProducer+i))
			}
		}(p)
	}

	results := make(chan []int, consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			var got []int
			for {
				v, st := q.WaitPull()
				if st == Closed {
					results <- got
					return
				}
				got = append(got, v)
			}
		}()
	}

	producerWG.Wait()
	q.Close()

	seen := make(map[int]int, producers*perProducer)
	for c := 0; c < consumers; c++ {
		for _, v := range receive(t, results) {
			seen[v]++
		}
	}

	require.Len(t, seen, producers*perProducer)
	for v, n := range seen {
		assert.Equal(t, 1, n, "element %d delivered %d times", v, n)
	}

	stats := q.Stats()
	assert.Equal(t, int64(producers*perProducer), stats.TotalPushed)
	assert.Equal(t, int64(producers*perProducer), stats.TotalPulled)
	assert.True(t, q.Empty())
}

func TestSyncPriorityQueue_MixedOperations(t *testing.T) {
	q := New[int](WithCapacity(4))

	var wg sync.WaitGroup
	var mu sync.Mutex
	pushed, pulled := 0, 0

	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if q.TryPush(i*1000+j) == Success {
					mu.Lock()
					pushed++
					mu.Unlock()
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, st := q.PullFor(time.Millisecond); st == Success {
					mu.Lock()
					pulled++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, pushed-pulled, q.Size())
	assert.LessOrEqual(t, q.Size(), q.Capacity())
}
