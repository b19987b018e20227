// Package worker defines the ingest workers that move submitted events
// from the queue into the catalogue store.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/pkg/logger"
	"github.com/okian/encore/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Event abstracts what workers read off the queue.
type Event = model.Event

// Indexer writes validated events into the catalogue.
type Indexer interface {
	Upsert(ctx context.Context, ev model.Event) (bool, error)
	Count(ctx context.Context) int
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker consumes events from the queue and indexes them.
type Worker struct {
	queue   Queue
	indexer Indexer
	name    string

	done chan struct{}

	logger logger.Logger
}

// NewWorker creates a new ingest worker with configuration options.
func NewWorker(queue Queue, indexer Indexer, opts ...Option) *Worker {
	w := &Worker{
		queue:   queue,
		indexer: indexer,
		name:    "worker",
		done:    make(chan struct{}),
		logger:  logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop until ctx is canceled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing event",
					logger.String("eventID", event.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// processEvent validates and indexes a single event.
func (w *Worker) processEvent(ctx context.Context, event Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := event.Validate(); err != nil {
		metrics.RecordEventInvalid()
		metrics.RecordWorkerError()
		return fmt.Errorf("dropping event %q: %w", event.ID, err)
	}

	created, err := w.indexer.Upsert(ctx, event)
	if err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("indexing event %q: %w", event.ID, err)
	}

	metrics.RecordEventIngested()
	metrics.UpdateStoreEvents(w.indexer.Count(ctx))
	w.logger.Debug(ctx, "indexed event",
		logger.String("eventID", event.ID),
		logger.String("title", event.Title),
		logger.Any("created", created),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*Worker

	logger logger.Logger
}

// NewPool creates a pool of workerCount ingest workers.
func NewPool(workerCount int, queue Queue, indexer Indexer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewWorker(queue, indexer, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop waits for all workers to drain. The queue must be closed first
// so the dequeue channels terminate.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
			p.logger.Warn(context.Background(), "worker shutdown timed out",
				logger.String("worker", w.name),
			)
		}
	}
}
