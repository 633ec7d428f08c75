/*
Package worker runs tasks from a shared priority backlog.

# Overview

PriorityWorkerPool owns a fixed number of worker goroutines that consume a
queue.SyncPriorityQueue of *PriorityTask. Higher priority tasks run first;
tasks of equal priority run in submission order.

# Core Components

## PriorityWorkerPool

  - Submit and SubmitWithPriority wait while the backlog is full
  - TrySubmit fails with types.ErrWorkerPoolFull instead of waiting
  - Shutdown closes the backlog, lets workers drain it and joins them
  - Tasks failing with a types.RetryableError are re-queued up to MaxRetries
  - Optional rate limiting of dispatches (golang.org/x/time/rate)
  - OpenTelemetry instruments for executions, durations, retries and backlog size
  - Structured logging through zap

## Worker

Bookkeeping for a single consumer goroutine: state, processed and failed
counters, and panic recovery around task execution.

## Task

  - BasicTask: a function with an ID and priority
  - PriorityTask: the backlog entry wrapping a types.Task

# Usage

	config := worker.DefaultPriorityWorkerPoolConfig()
	config.PoolSize = 4
	config.Logger = logger

	pool, err := worker.NewPriorityWorkerPool(config)
	if err != nil {
		return err
	}
	if err := pool.Start(ctx); err != nil {
		return err
	}
	defer pool.Close()

	task := worker.NewBasicTask(func(ctx context.Context) error {
		return nil
	})
	if err := pool.SubmitWithPriority(task, 10); err != nil {
		logger.Warn("submit failed", zap.Error(err))
	}
*/
package worker
