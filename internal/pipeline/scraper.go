package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/model"
)

var (
	// ErrNoSearcher is returned by New when no search capability is given.
	ErrNoSearcher = eris.New("pipeline: searcher is required")
	// ErrEmptySubject is returned for a subject without a name.
	ErrEmptySubject = eris.New("pipeline: subject name is required")
)

// Report is a structured output plus the intermediate results that
// produced it.
type Report struct {
	Output          *model.ScrapedData
	Queries         model.QueryBatch
	Primary         model.SearchResults
	Fallback        map[string]model.SourcedAnswer
	FallbackQueries int
	Quality         model.QualityTier
	Duration        time.Duration
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithPolicy sets the search execution policy.
func WithPolicy(p ExecutionPolicy) Option {
	return func(s *Scraper) { s.policy = p }
}

// WithObserver registers a per-query observer.
func WithObserver(o Observer) Option {
	return func(s *Scraper) { s.observe = o }
}

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

// Scraper runs the research workflow: build queries, execute them, grade
// the results, enrich with category insights when thin, and structure the
// report. It holds no per-request state.
type Scraper struct {
	exec    *Executor
	policy  ExecutionPolicy
	observe Observer
	now     func() time.Time
}

// New creates a Scraper around a search capability.
func New(searcher Searcher, opts ...Option) (*Scraper, error) {
	if searcher == nil {
		return nil, ErrNoSearcher
	}
	s := &Scraper{
		policy: SingleWorker,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	s.exec = NewExecutor(searcher, s.policy, s.observe)
	return s, nil
}

// Run researches a subject and returns its report.
func (s *Scraper) Run(ctx context.Context, subject model.Subject) (*model.ScrapedData, error) {
	rep, err := s.Execute(ctx, subject)
	if err != nil {
		return nil, err
	}
	return rep.Output, nil
}

// Execute researches a subject and returns the report with intermediates.
func (s *Scraper) Execute(ctx context.Context, subject model.Subject) (*Report, error) {
	if subject.Name == "" {
		return nil, ErrEmptySubject
	}
	if !subject.Type.Valid() {
		return nil, eris.Errorf("pipeline: unknown subject type %q", subject.Type)
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: context done before start")
	}

	start := time.Now()
	log := zap.L().With(
		zap.String("subject", subject.Name),
		zap.String("type", string(subject.Type)),
		zap.String("category", subject.Category),
	)

	queries := BuildQueries(subject)
	log.Info("pipeline: executing primary queries", zap.Int("queries", len(queries)))
	primary := s.exec.Execute(ctx, queries)

	tier := AssessQuality(primary)
	log.Info("pipeline: assessed quality",
		zap.String("tier", string(tier)),
		zap.Int("succeeded", primary.Succeeded()),
		zap.Int("total", len(primary)),
	)

	rep := &Report{
		Queries: queries,
		Primary: primary,
		Quality: tier,
	}

	if tier != model.QualitySufficient {
		rep.FallbackQueries = len(CategoryQueries(subject.Category))
		rep.Fallback = Enrich(ctx, s.exec, tier, subject.Category)
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: context done before structuring")
	}

	out, err := Structure(
		Evidence{Subject: subject, Answers: primary.Answers()},
		Stamp{Quality: tier, Insights: rep.Fallback, At: s.now()},
	)
	if err != nil {
		return nil, err
	}
	rep.Output = out
	rep.Duration = time.Since(start)

	log.Info("pipeline: research complete",
		zap.Int("category_insights", len(out.CategoryInsights)),
		zap.Int("sources", len(out.SourcesScraped)),
		zap.Duration("duration", rep.Duration),
	)
	return rep, nil
}
