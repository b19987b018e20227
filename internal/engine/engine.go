// Package engine wires feature extraction, scoring, ranking and
// explanation into the recommendation pass. The engine owns no state
// beyond its configuration; every invocation reads its own inputs and
// allocates its own outputs, so it is safe for concurrent use.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/encore/internal/domain/explain"
	"github.com/okian/encore/internal/domain/feature"
	"github.com/okian/encore/internal/domain/model"
	"github.com/okian/encore/internal/domain/ranking"
	"github.com/okian/encore/internal/domain/scoring"
	"github.com/okian/encore/pkg/metrics"
)

// Engine runs the scoring pass for one (profile, candidates) request.
type Engine struct {
	extractor   *feature.Extractor
	weights     scoring.Weights
	parallelism int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithExtractor sets a custom feature extractor.
func WithExtractor(x *feature.Extractor) Option {
	return func(e *Engine) {
		if x != nil {
			e.extractor = x
		}
	}
}

// WithWeights sets the default scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithParallelism bounds the scoring fan-out.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// New constructs an Engine with the default extractor and weights.
func New(opts ...Option) *Engine {
	e := &Engine{
		extractor:   feature.NewExtractor(),
		weights:     scoring.DefaultWeights(),
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request carries one scoring invocation. Weights, when set, override
// the engine defaults for this request only.
type Request struct {
	Profile    model.UserProfile
	Candidates []model.Event
	Limit      int
	Weights    *scoring.Weights
}

// Entry is one ranked result row.
type Entry struct {
	Event       model.Event
	Breakdown   scoring.Breakdown
	Explanation string
}

// Skipped reports a candidate excluded from scoring.
type Skipped struct {
	EventID string
	Reason  string
}

// Result is the ordered, explained output of one scoring pass. Order is
// the contract; callers must not re-sort.
type Result struct {
	Entries []Entry
	Skipped []Skipped
}

// Recommend validates the profile, scores every well-formed candidate,
// and returns the ranked, explained result. A malformed candidate is
// excluded and reported in Result.Skipped rather than aborting the
// request; one bad record cannot block recommendations for the rest.
func (e *Engine) Recommend(ctx context.Context, req Request) (Result, error) {
	if err := req.Profile.Validate(); err != nil {
		return Result{}, fmt.Errorf("recommend: %w", err)
	}

	weights := e.weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	var result Result
	candidates := make([]model.Event, 0, len(req.Candidates))
	seen := make(map[string]struct{}, len(req.Candidates))
	for i := range req.Candidates {
		ev := req.Candidates[i]
		if err := ev.Validate(); err != nil {
			result.Skipped = append(result.Skipped, Skipped{EventID: ev.ID, Reason: err.Error()})
			metrics.RecordCandidateSkipped()
			continue
		}
		// Result entries are unique by event id; first occurrence wins.
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		seen[ev.ID] = struct{}{}
		candidates = append(candidates, ev)
	}

	scored := e.scoreAll(&req.Profile, candidates, weights)
	ranked := ranking.Rank(scored, req.Limit)

	result.Entries = make([]Entry, len(ranked))
	for i, s := range ranked {
		result.Entries[i] = Entry{
			Event:       s.Event,
			Breakdown:   s.Breakdown,
			Explanation: explain.Explain(s.Vector, s.Breakdown),
		}
	}
	return result, nil
}

// scoreAll runs extraction and scoring over the candidate set with a
// bounded fan-out. Each event is scored independently; ordering is
// imposed afterwards by the ranker.
func (e *Engine) scoreAll(profile *model.UserProfile, candidates []model.Event, weights scoring.Weights) []ranking.Scored {
	start := time.Now()
	defer func() {
		metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	}()

	scored := make([]ranking.Scored, len(candidates))
	sem := make(chan struct{}, e.parallelism)
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			v := e.extractor.Extract(profile, &candidates[i])
			scored[i] = ranking.Scored{
				Event:     candidates[i],
				Vector:    v,
				Breakdown: weights.Score(v),
			}
		}(i)
	}
	wg.Wait()

	return scored
}
