package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/metrics"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/pipeline"
)

// research classifies a brief, runs the research pipeline and records the
// run. Recording is best effort: a store failure is logged and does not
// fail the research. The returned run id is empty when nothing was
// recorded.
func research(ctx context.Context, env *appEnv, brief model.Brief) (*model.ScrapedData, string, error) {
	subject := env.Classifier.Classify(brief)
	log := zap.L().With(zap.String("subject", subject.Name), zap.String("type", string(subject.Type)))

	var runID string
	if env.Store != nil {
		run, err := env.Store.CreateRun(ctx, subject)
		if err != nil {
			log.Warn("research: record run failed", zap.Error(err))
		} else {
			runID = run.ID
		}
	}

	start := time.Now()
	rep, err := env.Scraper.Execute(ctx, subject)
	stats := runStats(rep, time.Since(start))
	stats.Cost = env.Costs.Run(stats, env.Depth)

	if err != nil {
		metrics.ObserveScrape(string(subject.Type), "")
		if runID != "" {
			// The request context may already be done.
			if ferr := env.Store.FailRun(context.WithoutCancel(ctx), runID, err.Error(), stats); ferr != nil {
				log.Warn("research: record failure failed", zap.String("run_id", runID), zap.Error(ferr))
			}
		}
		return nil, runID, err
	}

	metrics.ObserveScrape(string(subject.Type), string(rep.Quality))
	if runID != "" {
		if cerr := env.Store.CompleteRun(context.WithoutCancel(ctx), runID, rep.Output, stats); cerr != nil {
			log.Warn("research: record completion failed", zap.String("run_id", runID), zap.Error(cerr))
		}
	}

	log.Info("research: complete",
		zap.String("run_id", runID),
		zap.String("quality", string(rep.Quality)),
		zap.Float64("cost", stats.Cost),
	)
	return rep.Output, runID, nil
}

// runStats summarizes a pipeline report. rep may be nil when the pipeline
// failed before producing one.
func runStats(rep *pipeline.Report, elapsed time.Duration) model.RunStats {
	stats := model.RunStats{DurationMs: elapsed.Milliseconds()}
	if rep == nil {
		return stats
	}
	stats.Queries = len(rep.Queries)
	stats.FailedQueries = len(rep.Primary) - rep.Primary.Succeeded()
	stats.FallbackQueries = rep.FallbackQueries
	stats.Quality = rep.Quality
	return stats
}
