package pipeline

import "github.com/sells-group/adscout/internal/model"

// Success-rate thresholds for the quality tiers.
const (
	SufficientRate = 0.7
	PartialRate    = 0.3
)

// Tier grades a batch from its success count. An empty batch is MINIMAL.
func Tier(successful, total int) model.QualityTier {
	if total <= 0 {
		return model.QualityMinimal
	}
	rate := float64(successful) / float64(total)
	switch {
	case rate >= SufficientRate:
		return model.QualitySufficient
	case rate >= PartialRate:
		return model.QualityPartial
	default:
		return model.QualityMinimal
	}
}

// AssessQuality grades a set of search results.
func AssessQuality(results model.SearchResults) model.QualityTier {
	return Tier(results.Succeeded(), len(results))
}
