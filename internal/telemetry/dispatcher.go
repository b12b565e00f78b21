// Package telemetry runs fire-and-forget side work (lookup logging, fault
// events) on a single background worker fed by a bounded queue. Submitting
// never blocks the caller.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// drainTimeout bounds how long queued jobs may run after shutdown starts.
const drainTimeout = 5 * time.Second

// Job is one unit of background work.
type Job func(ctx context.Context) error

type task struct {
	name string
	fn   Job
}

type dropCounter interface {
	TelemetryDropped()
}

// Dispatcher queues jobs and runs them sequentially.
type Dispatcher struct {
	queue   chan task
	log     *slog.Logger
	metrics dropCounter
}

// NewDispatcher creates a Dispatcher with the given queue capacity.
// metrics may be nil.
func NewDispatcher(logger *slog.Logger, queueSize int, metrics dropCounter) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:   make(chan task, queueSize),
		log:     logger.With("component", "telemetry"),
		metrics: metrics,
	}
}

// Submit enqueues job without blocking. It reports false when the queue is
// full and the job was dropped.
func (d *Dispatcher) Submit(name string, job Job) bool {
	select {
	case d.queue <- task{name: name, fn: job}:
		return true
	default:
		if d.metrics != nil {
			d.metrics.TelemetryDropped()
		}
		d.log.Warn("telemetry queue full, job dropped", slog.String("job", name))
		return false
	}
}

// Pending reports how many jobs are waiting in the queue.
func (d *Dispatcher) Pending() int { return len(d.queue) }

// Capacity reports the queue size.
func (d *Dispatcher) Capacity() int { return cap(d.queue) }

// Run processes jobs until ctx is canceled, then drains what is already
// queued within drainTimeout. It always returns nil.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			d.drain(ctx)
			return nil
		}
		select {
		case t := <-d.queue:
			d.exec(ctx, t)
		case <-ctx.Done():
		}
	}
}

func (d *Dispatcher) drain(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), drainTimeout)
	defer cancel()

	for {
		select {
		case t := <-d.queue:
			d.exec(ctx, t)
		default:
			return
		}
		if ctx.Err() != nil {
			d.log.Warn("telemetry drain timed out", slog.Int("remaining", len(d.queue)))
			return
		}
	}
}

// exec runs one job; errors and panics are logged and never escape.
func (d *Dispatcher) exec(ctx context.Context, t task) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("telemetry job panicked", slog.String("job", t.name), slog.String("panic", fmt.Sprint(r)))
		}
	}()

	if err := t.fn(ctx); err != nil {
		d.log.Warn("telemetry job failed", slog.String("job", t.name), slog.String("error", err.Error()))
	}
}
