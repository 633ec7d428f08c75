package queue

import (
	"github.com/jzx17/syncpq/pkg/types"
)

// Unbounded is the capacity of a queue with no size limit
const Unbounded = 0

// initialReserve caps the backing slice allocated by the constructor
const initialReserve = 64

// config holds queue construction settings
type config struct {
	capacity int
	clock    types.Clock
}

// Option configures a SyncPriorityQueue
type Option func(*config)

// WithCapacity bounds the queue to n elements. n <= 0 means Unbounded.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = Unbounded
		}
		c.capacity = n
	}
}

// WithClock sets the clock used by PullFor and PullUntil
func WithClock(clock types.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		capacity: Unbounded,
		clock:    types.NewRealClock(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
