// Package cost estimates the API spend of research runs and media
// generation.
package cost

import (
	"github.com/sells-group/adscout/internal/config"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/pkg/linkup"
)

// Rates holds per-provider pricing in USD.
type Rates struct {
	Linkup  LinkupRate  `yaml:"linkup" mapstructure:"linkup"`
	Freepik FreepikRate `yaml:"freepik" mapstructure:"freepik"`
}

// LinkupRate holds per-query search pricing by depth.
type LinkupRate struct {
	Standard float64 `yaml:"standard" mapstructure:"standard"`
	Deep     float64 `yaml:"deep" mapstructure:"deep"`
}

// FreepikRate holds per-asset generation pricing.
type FreepikRate struct {
	Image float64 `yaml:"image" mapstructure:"image"`
	Video float64 `yaml:"video" mapstructure:"video"`
}

// RatesFromConfig converts the pricing section of the config.
func RatesFromConfig(p config.PricingConfig) Rates {
	return Rates{
		Linkup:  LinkupRate{Standard: p.Linkup.Standard, Deep: p.Linkup.Deep},
		Freepik: FreepikRate{Image: p.Freepik.Image, Video: p.Freepik.Video},
	}
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// LinkupQuery returns the cost of one search at the given depth. Unknown
// depths are priced as standard.
func (c *Calculator) LinkupQuery(depth string) float64 {
	if depth == linkup.DepthDeep {
		return c.rates.Linkup.Deep
	}
	return c.rates.Linkup.Standard
}

// Run returns the search cost of a research run. Every issued query is
// billed, including failed ones.
func (c *Calculator) Run(stats model.RunStats, depth string) float64 {
	return float64(stats.Queries+stats.FallbackQueries) * c.LinkupQuery(depth)
}

// Media returns the cost of one generation. A video includes its base
// image.
func (c *Calculator) Media(t model.MediaType) float64 {
	switch t {
	case model.MediaVideo:
		return c.rates.Freepik.Image + c.rates.Freepik.Video
	case model.MediaImage:
		return c.rates.Freepik.Image
	default:
		return 0
	}
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Linkup:  LinkupRate{Standard: 0.005, Deep: 0.05},
		Freepik: FreepikRate{Image: 0.04, Video: 0.40},
	}
}
