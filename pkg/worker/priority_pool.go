package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jzx17/syncpq/pkg/queue"
	"github.com/jzx17/syncpq/pkg/types"
)

// PriorityWorkerPoolConfig contains configuration for priority worker pool
type PriorityWorkerPoolConfig struct {
	// PoolSize is the number of workers in the pool
	PoolSize int

	// QueueCapacity bounds the backlog, 0 for unlimited
	QueueCapacity int

	// DefaultPriority is used by Submit and TrySubmit
	DefaultPriority int

	// MaxRetries is how many times a task failing with a retryable error
	// is put back into the backlog
	MaxRetries int

	// RateLimit caps task dispatches per second across the pool, 0 disables
	RateLimit float64

	// RateBurst is the token-bucket burst, defaults to 1 when RateLimit is set
	RateBurst int

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// Logger receives lifecycle and failure events (optional, defaults to nop)
	Logger *zap.Logger

	// Meter creates the pool instruments (optional, defaults to the global provider)
	Meter metric.Meter

	// ErrorHandler is called with every error that is not retried
	ErrorHandler types.ErrorHandler
}

// DefaultPriorityWorkerPoolConfig returns default configuration
func DefaultPriorityWorkerPoolConfig() *PriorityWorkerPoolConfig {
	return &PriorityWorkerPoolConfig{
		PoolSize:        10,
		QueueCapacity:   1000,
		DefaultPriority: 5,
		Clock:           types.NewRealClock(),
		Logger:          zap.NewNop(),
	}
}

// Validate checks the configuration
func (c *PriorityWorkerPoolConfig) Validate() error {
	if c.PoolSize <= 0 {
		return fmt.Errorf("pool size must be positive, got %d", c.PoolSize)
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue capacity must be positive or 0 for unlimited, got %d", c.QueueCapacity)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// PriorityWorkerPool runs tasks from a shared priority backlog. Shutdown
// closes the backlog; workers execute everything already queued and exit.
type PriorityWorkerPool struct {
	config  *PriorityWorkerPoolConfig
	workers []*Worker
	backlog *queue.SyncPriorityQueue[*PriorityTask]
	limiter *rate.Limiter
	metrics *poolMetrics
	logger  *zap.Logger

	// state management
	mu     sync.Mutex
	state  int32 // types.PoolState
	group  errgroup.Group
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	// statistics
	completed int64
	failed    int64
	retried   int64
}

// NewPriorityWorkerPool creates a new priority worker pool
func NewPriorityWorkerPool(config *PriorityWorkerPoolConfig) (*PriorityWorkerPool, error) {
	if config == nil {
		config = DefaultPriorityWorkerPoolConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	backlog := queue.NewFunc(priorityTaskLess,
		queue.WithCapacity(config.QueueCapacity),
		queue.WithClock(config.Clock),
	)

	metrics, err := newPoolMetrics(config.Meter, backlog.Size)
	if err != nil {
		return nil, errors.Wrap(err, "create pool metrics")
	}

	pool := &PriorityWorkerPool{
		config:  config,
		workers: make([]*Worker, config.PoolSize),
		backlog: backlog,
		metrics: metrics,
		logger:  config.Logger.With(zap.String("component", "priority_pool")),
		done:    make(chan struct{}),
	}

	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst <= 0 {
			burst = 1
		}
		pool.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	for i := range pool.workers {
		pool.workers[i] = NewWorker(i, config.Clock)
	}

	return pool, nil
}

// Start starts the workers
func (p *PriorityWorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.State() {
	case types.PoolStateRunning:
		return fmt.Errorf("priority worker pool is already running")
	case types.PoolStateClosed:
		return types.ErrPoolClosed
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	atomic.StoreInt32(&p.state, int32(types.PoolStateRunning))

	for _, w := range p.workers {
		p.group.Go(func() error {
			p.runWorker(w)
			return nil
		})
	}

	go func() {
		_ = p.group.Wait()
		close(p.done)
	}()

	p.logger.Info("priority worker pool started",
		zap.Int("pool_size", p.config.PoolSize),
		zap.Int("queue_capacity", p.config.QueueCapacity),
	)

	return nil
}

// Submit queues a task with the default priority, waiting while the backlog is full
func (p *PriorityWorkerPool) Submit(task types.Task) error {
	return p.SubmitWithPriority(task, p.config.DefaultPriority)
}

// SubmitWithPriority queues a task, waiting while the backlog is full
func (p *PriorityWorkerPool) SubmitWithPriority(task types.Task, priority int) error {
	if err := p.checkSubmit(task); err != nil {
		return err
	}

	pt := NewPriorityTaskWithClock(task, priority, p.config.Clock)
	if err := p.backlog.Push(pt); err != nil {
		if errors.Is(err, types.ErrQueueClosed) {
			return errors.Wrapf(types.ErrPoolClosed, "submit task %s", task.ID())
		}
		return errors.Wrapf(err, "submit task %s", task.ID())
	}
	return nil
}

// TrySubmit queues a task without waiting
func (p *PriorityWorkerPool) TrySubmit(task types.Task, priority int) error {
	if err := p.checkSubmit(task); err != nil {
		return err
	}

	pt := NewPriorityTaskWithClock(task, priority, p.config.Clock)
	switch st := p.backlog.TryPush(pt); st {
	case queue.Success:
		return nil
	case queue.Full:
		return errors.Wrapf(types.ErrWorkerPoolFull, "submit task %s", task.ID())
	case queue.Closed:
		return errors.Wrapf(types.ErrPoolClosed, "submit task %s", task.ID())
	default:
		return errors.Errorf("submit task %s: unexpected status %s", task.ID(), st)
	}
}

func (p *PriorityWorkerPool) checkSubmit(task types.Task) error {
	if task == nil {
		return types.ErrNilTask
	}
	switch p.State() {
	case types.PoolStateCreated:
		return types.ErrPoolNotRunning
	case types.PoolStateClosed:
		return types.ErrPoolClosed
	}
	return nil
}

// Shutdown stops accepting tasks and waits until every queued task has run.
// If ctx ends first the running tasks' context is cancelled and ctx.Err()
// is returned; workers keep draining the backlog in the background and a
// later Shutdown waits for them again.
func (p *PriorityWorkerPool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	prev := p.State()
	atomic.StoreInt32(&p.state, int32(types.PoolStateClosed))
	p.backlog.Close()
	cancel := p.cancel
	p.mu.Unlock()

	if cancel == nil {
		// never started, nothing to join
		return nil
	}

	if prev == types.PoolStateRunning {
		p.logger.Info("priority worker pool shutting down", zap.Int("pending", p.backlog.Size()))
	}

	select {
	case <-p.done:
		cancel()
		if prev == types.PoolStateRunning {
			p.logger.Info("priority worker pool stopped",
				zap.Int64("completed", atomic.LoadInt64(&p.completed)),
				zap.Int64("failed", atomic.LoadInt64(&p.failed)),
			)
		}
		return nil
	case <-ctx.Done():
		cancel()
		p.logger.Warn("priority worker pool shutdown interrupted",
			zap.Int("pending", p.backlog.Size()),
			zap.Error(ctx.Err()),
		)
		return ctx.Err()
	}
}

// Close shuts the pool down without a deadline
func (p *PriorityWorkerPool) Close() error {
	return p.Shutdown(context.Background())
}

// runWorker pulls tasks until the backlog is closed and drained
func (p *PriorityWorkerPool) runWorker(w *Worker) {
	defer w.setState(WorkerStateStopped)

	for {
		pt, st := p.backlog.WaitPull()
		if st == queue.Closed {
			return
		}

		// tokens are only taken for a task in hand
		if p.limiter != nil {
			if err := p.limiter.Wait(p.ctx); err != nil {
				// cancelled: stop throttling and keep draining
				p.logger.Debug("rate limiter wait aborted", zap.Int("worker_id", w.ID()), zap.Error(err))
			}
		}

		p.execute(w, pt)
	}
}

// execute runs pt on w and handles the outcome
func (p *PriorityWorkerPool) execute(w *Worker, pt *PriorityTask) {
	elapsed, err := w.process(p.ctx, pt)
	p.metrics.recordExecution(p.ctx, elapsed, err)

	if err == nil {
		atomic.AddInt64(&p.completed, 1)
		return
	}
	atomic.AddInt64(&p.failed, 1)

	if types.IsRetryable(err) && pt.attempts < p.config.MaxRetries {
		pt.attempts++
		st := p.backlog.TryPush(pt)
		if st == queue.Success {
			atomic.AddInt64(&p.retried, 1)
			p.metrics.recordRetry(p.ctx)
			p.logger.Debug("task re-queued",
				zap.String("task_id", pt.ID()),
				zap.Int("attempt", pt.attempts),
			)
			return
		}
		p.logger.Warn("task retry dropped",
			zap.String("task_id", pt.ID()),
			zap.Stringer("status", st),
		)
	}

	p.logger.Error("task failed",
		zap.Int("worker_id", w.ID()),
		zap.String("task_id", pt.ID()),
		zap.Int("priority", pt.Priority()),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)

	if p.config.ErrorHandler != nil {
		_ = p.config.ErrorHandler(err)
	}
}

// Size returns the worker pool size
func (p *PriorityWorkerPool) Size() int {
	return p.config.PoolSize
}

// State returns the pool lifecycle state
func (p *PriorityWorkerPool) State() types.PoolState {
	return types.PoolState(atomic.LoadInt32(&p.state))
}

// IsRunning checks if the worker pool is running
func (p *PriorityWorkerPool) IsRunning() bool {
	return p.State() == types.PoolStateRunning
}

// IsClosed checks if the worker pool is closed
func (p *PriorityWorkerPool) IsClosed() bool {
	return p.State() == types.PoolStateClosed
}

// QueueLength returns current backlog length
func (p *PriorityWorkerPool) QueueLength() int {
	return p.backlog.Size()
}

// Stats returns basic worker pool statistics
func (p *PriorityWorkerPool) Stats() types.WorkerPoolStats {
	var activeWorkers int
	for _, w := range p.workers {
		if w.State() == WorkerStateWorking {
			activeWorkers++
		}
	}

	return types.WorkerPoolStats{
		PoolSize:      p.config.PoolSize,
		ActiveWorkers: activeWorkers,
		QueueSize:     p.backlog.Size(),
		QueueCapacity: p.backlog.Capacity(),
		Completed:     atomic.LoadInt64(&p.completed),
		Failed:        atomic.LoadInt64(&p.failed),
		Retried:       atomic.LoadInt64(&p.retried),
	}
}

// WorkerStats gets statistics of all workers
func (p *PriorityWorkerPool) WorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}
