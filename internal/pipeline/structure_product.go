package pipeline

import (
	"fmt"

	"github.com/sells-group/adscout/internal/model"
)

const positioningNew = "NEW product with competitive advantages"

type productStructurer struct{}

func (productStructurer) Structure(ev Evidence, out *model.ScrapedData) {
	s := ev.Subject
	out.CompanyInfo["product_name"] = s.Name
	out.ProductDetails["positioning"] = positioningNew

	var weaknesses []string
	for i, name := range firstN(s.Competitors, model.MaxCompetitors) {
		key := fmt.Sprintf("competitor_%d", i+1)
		profile := competitorProfile(ev, key, name)
		out.CompetitorAnalysis[key] = profile
		weaknesses = append(weaknesses, profile.Weaknesses...)
	}

	if gaps := ev.matching("market_gaps"); len(gaps) > 0 {
		out.MarketGaps = ExtractLines(gaps[0].Answer, maxGaps)
	}

	if pricing := ev.matching("pricing"); len(pricing) > 0 {
		ourPrice := s.Price
		if ourPrice == "" {
			ourPrice = "Not specified"
		}
		out.PricingComparison = &model.PricingComparison{
			OurPrice:       ourPrice,
			MarketAnalysis: pricing[0].Answer,
			Sources:        pricing[0].SourceURLs(maxSources),
		}
	}

	out.HowToBeatThem = counterStrategy(weaknesses, out.MarketGaps)
}

func competitorProfile(ev Evidence, key, name string) model.CompetitorProfile {
	p := model.CompetitorProfile{
		Name: name,
		Overview: model.CompetitorOverview{
			Features: []string{},
			Sources:  []string{},
		},
		Weaknesses:    []string{},
		HowWeBeatThem: []string{},
	}

	if a, ok := ev.lookup(key + "_overview"); ok {
		p.Overview = model.CompetitorOverview{
			Description: a.Answer,
			Features:    a.SourceNames(maxSources),
			Sources:     a.SourceURLs(maxSources),
		}
	}
	if a, ok := ev.lookup(key + "_weaknesses"); ok {
		p.Weaknesses = ExtractLines(a.Answer, maxWeaknesses)
	}
	if a, ok := ev.lookup(key + "_vs_us"); ok {
		p.HowWeBeatThem = ExtractLines(a.Answer, maxHeadToHead)
	}
	return p
}

func counterStrategy(weaknesses, gaps []string) *model.CounterStrategy {
	firstWeakness := "competitor weakness"
	if len(weaknesses) > 0 {
		firstWeakness = weaknesses[0]
	}
	firstGap := "unmet need"
	if len(gaps) > 0 {
		firstGap = gaps[0]
	}

	return &model.CounterStrategy{
		ExploitCompetitorWeaknesses: append([]string{}, firstN(weaknesses, maxWeaknesses)...),
		FillMarketGaps:              append([]string{}, firstN(gaps, maxStrategyGap)...),
		CompetitiveAdvantages: []string{
			"Address " + firstWeakness,
			"Fill gap: " + firstGap,
		},
	}
}
