// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	eventqueue "github.com/okian/encore/internal/adapters/mq/queue"
	workerpool "github.com/okian/encore/internal/adapters/mq/worker"
	"github.com/okian/encore/internal/adapters/repository"
	"github.com/okian/encore/internal/domain/dedupe"
	"github.com/okian/encore/internal/domain/feature"
	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/internal/domain/scoring"
	"github.com/okian/encore/internal/domain/types"
	"github.com/okian/encore/internal/engine"
	"github.com/okian/encore/pkg/logger"
	"github.com/okian/encore/pkg/metrics"
)

// Service owns the catalogue, profile store, ingest pipeline and the
// recommendation engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	events     repository.EventStore
	profiles   repository.ProfileStore
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	pool       *workerpool.Pool
	engine     *engine.Engine

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	shardCount    int
	weights       scoring.Weights
	languageBonus float64
	defaultLimit  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of event store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithWeights sets the default scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithLanguageBonus sets the context-signal language bonus.
func WithLanguageBonus(bonus float64) Option {
	return func(s *Service) {
		if bonus >= 0 {
			s.languageBonus = bonus
		}
	}
}

// WithDefaultLimit sets the result size used when a request does not
// ask for one.
func WithDefaultLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10_000,
		dedupeSize:    100_000,
		shardCount:    8,
		weights:       scoring.DefaultWeights(),
		languageBonus: 0.2,
		defaultLimit:  10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	s.events = repository.NewInMemoryEventStore(
		repository.WithShardCount(s.shardCount),
	)
	s.profiles = repository.NewInMemoryProfileStore()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.engine = engine.New(
		engine.WithWeights(s.weights),
		engine.WithExtractor(feature.NewExtractor(
			feature.WithLanguageBonus(s.languageBonus),
		)),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.eventQueue, s.events)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommendation service...")

	// Close the queue first so worker dequeue channels drain and close.
	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records
// it if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordEventDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits an event for asynchronous indexing.
// Returns false on backpressure.
func (s *Service) Enqueue(ctx context.Context, e model.Event) bool {
	s.logger.Debug(ctx, "enqueueing event",
		logger.String("eventID", e.ID),
		logger.String("title", e.Title),
	)
	ok := s.eventQueue.Enqueue(ctx, e)
	if ok {
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	}
	return ok
}

// SaveProfile creates or replaces the profile for a user.
func (s *Service) SaveProfile(ctx context.Context, p model.UserProfile) error {
	if err := s.profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	metrics.UpdateStoreProfiles(s.profiles.Count(ctx))
	s.logger.Debug(ctx, "saved profile", logger.String("username", p.Username))
	return nil
}

// Recommend loads the user's profile, selects the eligible candidates,
// and runs the scoring pass. Returns repository.ErrNotFound when the
// username is unknown.
func (s *Service) Recommend(ctx context.Context, username string, q types.RecommendQuery) (engine.Result, error) {
	start := time.Now()
	metrics.RecordRecommendationRequest()

	profile, err := s.profiles.Get(ctx, username)
	if err != nil {
		return engine.Result{}, fmt.Errorf("recommend for %q: %w", username, err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	// Date filtering happens before scoring; past events are never
	// candidates.
	candidates := s.eligibleEvents(ctx, q.DateFrom, q.DateTo)

	result, err := s.engine.Recommend(ctx, engine.Request{
		Profile:    profile,
		Candidates: candidates,
		Limit:      limit,
		Weights:    q.Weights,
	})
	if err != nil {
		return engine.Result{}, err
	}

	metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordResultSize(len(result.Entries))
	s.logger.Debug(ctx, "served recommendations",
		logger.String("username", username),
		logger.Int("candidates", len(candidates)),
		logger.Int("results", len(result.Entries)),
		logger.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// eligibleEvents returns the snapshot of catalogue events inside the
// requested date window, excluding past events.
func (s *Service) eligibleEvents(ctx context.Context, from, to *time.Time) []model.Event {
	today := truncateToDay(time.Now())

	all := s.events.List(ctx)
	eligible := make([]model.Event, 0, len(all))
	for _, ev := range all {
		day := truncateToDay(ev.Date)
		if day.Before(today) {
			continue
		}
		if from != nil && day.Before(truncateToDay(*from)) {
			continue
		}
		if to != nil && day.After(truncateToDay(*to)) {
			continue
		}
		eligible = append(eligible, ev)
	}
	return eligible
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		totalEvents := s.events.Count(ctx)
		totalProfiles := s.profiles.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalEvents"] = totalEvents
		stats["totalProfiles"] = totalProfiles

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreEvents(totalEvents)
		metrics.UpdateStoreProfiles(totalProfiles)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
