package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/model"
)

// Enrich runs the category-level queries when the primary tier is not
// SUFFICIENT and returns only the queries that succeeded. It returns nil
// for a SUFFICIENT tier.
func Enrich(ctx context.Context, exec *Executor, tier model.QualityTier, category string) map[string]model.SourcedAnswer {
	if tier == model.QualitySufficient {
		return nil
	}

	zap.L().Info("pipeline: enriching with category insights",
		zap.String("tier", string(tier)),
		zap.String("category", category),
	)

	return exec.Execute(ctx, CategoryQueries(category)).Answers()
}
