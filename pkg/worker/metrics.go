package worker

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for pool metrics
const meterName = "github.com/jzx17/syncpq/worker"

// poolMetrics holds the pool instruments.
//
// Instruments:
//   - syncpq.task.executions (Int64Counter): attribute status ("ok" or "error")
//   - syncpq.task.duration (Float64Histogram): execution time in seconds
//   - syncpq.task.retries (Int64Counter): tasks put back into the backlog
//   - syncpq.queue.size (Int64ObservableGauge): current backlog length
type poolMetrics struct {
	executions metric.Int64Counter
	duration   metric.Float64Histogram
	retries    metric.Int64Counter
}

// newPoolMetrics creates the instruments on meter, or on the global
// MeterProvider when meter is nil
func newPoolMetrics(meter metric.Meter, backlog func() int) (*poolMetrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	executions, err := meter.Int64Counter(
		"syncpq.task.executions",
		metric.WithDescription("Total number of task executions"),
		metric.WithUnit("{execution}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"syncpq.task.duration",
		metric.WithDescription("Duration of task execution in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"syncpq.task.retries",
		metric.WithDescription("Total number of tasks re-queued after a retryable failure"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.Int64ObservableGauge(
		"syncpq.queue.size",
		metric.WithDescription("Number of tasks waiting in the backlog"),
		metric.WithUnit("{task}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(backlog()))
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return &poolMetrics{
		executions: executions,
		duration:   duration,
		retries:    retries,
	}, nil
}

func (m *poolMetrics) recordExecution(ctx context.Context, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	m.executions.Add(ctx, 1, attrs)
}

func (m *poolMetrics) recordRetry(ctx context.Context) {
	m.retries.Add(ctx, 1)
}
