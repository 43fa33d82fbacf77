package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/adscout/internal/model"
)

// errEmptyAnswer is recorded when a searcher returns neither an answer nor
// an error.
var errEmptyAnswer = eris.New("pipeline: search returned no answer")

// Searcher answers one natural-language query with a sourced answer.
type Searcher interface {
	Search(ctx context.Context, query string) (*model.SourcedAnswer, error)
}

// SearcherFunc adapts a function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string) (*model.SourcedAnswer, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string) (*model.SourcedAnswer, error) {
	return f(ctx, query)
}

// Observer is notified after each executed query.
type Observer func(queryID string, elapsed time.Duration, err error)

// ExecutionPolicy controls how a batch is sent to the searcher. Queries are
// always issued one at a time; Limiter optionally paces them.
type ExecutionPolicy struct {
	Workers int
	Limiter *rate.Limiter
}

// SingleWorker is the default unpaced sequential policy.
var SingleWorker = ExecutionPolicy{Workers: 1}

// Executor runs query batches against a Searcher. Failures are isolated per
// query and never retried.
type Executor struct {
	searcher Searcher
	policy   ExecutionPolicy
	observe  Observer
}

// NewExecutor creates an Executor. A policy asking for more than one worker
// is clamped to one.
func NewExecutor(s Searcher, policy ExecutionPolicy, observe Observer) *Executor {
	if policy.Workers != 1 {
		if policy.Workers > 1 {
			zap.L().Warn("pipeline: search executor is single-worker, clamping",
				zap.Int("requested_workers", policy.Workers))
		}
		policy.Workers = 1
	}
	return &Executor{searcher: s, policy: policy, observe: observe}
}

// Execute sends every query in the batch and returns one result per query
// id. Once ctx is done the remaining queries are recorded as failed.
func (e *Executor) Execute(ctx context.Context, batch model.QueryBatch) model.SearchResults {
	results := make(model.SearchResults, len(batch))

	for _, id := range batch.IDs() {
		if err := ctx.Err(); err != nil {
			results[id] = model.SearchResult{Err: eris.Wrapf(err, "pipeline: query %s skipped", id)}
			continue
		}

		if e.policy.Limiter != nil {
			if err := e.policy.Limiter.Wait(ctx); err != nil {
				results[id] = model.SearchResult{Err: eris.Wrapf(err, "pipeline: query %s rate wait", id)}
				continue
			}
		}

		start := time.Now()
		answer, err := e.searcher.Search(ctx, batch[id])
		if err == nil && answer == nil {
			err = errEmptyAnswer
		}
		elapsed := time.Since(start)

		if e.observe != nil {
			e.observe(id, elapsed, err)
		}

		if err != nil {
			zap.L().Warn("pipeline: query failed",
				zap.String("query_id", id),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
			results[id] = model.SearchResult{Err: err}
			continue
		}

		zap.L().Debug("pipeline: query answered",
			zap.String("query_id", id),
			zap.Int("sources", len(answer.Sources)),
			zap.Duration("elapsed", elapsed),
		)
		results[id] = model.SearchResult{Answer: answer}
	}

	return results
}
