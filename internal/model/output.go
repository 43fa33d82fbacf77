package model

import "time"

// CompetitorOverview summarizes what a competitor sells.
type CompetitorOverview struct {
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Sources     []string `json:"sources"`
}

// CompetitorProfile is the per-competitor section of a product report.
type CompetitorProfile struct {
	Name          string             `json:"name"`
	Overview      CompetitorOverview `json:"overview"`
	Weaknesses    []string           `json:"weaknesses"`
	HowWeBeatThem []string           `json:"how_we_beat_them"`
}

// CounterStrategy aggregates competitor weaknesses and market gaps.
type CounterStrategy struct {
	ExploitCompetitorWeaknesses []string `json:"exploit_competitor_weaknesses"`
	FillMarketGaps              []string `json:"fill_market_gaps"`
	CompetitiveAdvantages       []string `json:"competitive_advantages"`
}

// PricingComparison places the subject's price against the market.
type PricingComparison struct {
	OurPrice       string   `json:"our_price"`
	MarketAnalysis string   `json:"market_analysis"`
	Sources        []string `json:"sources"`
}

// EventMetrics holds attendance and success evidence for an event.
type EventMetrics struct {
	Attendance string   `json:"attendance"`
	Sources    []string `json:"sources"`
}

// CultureInfo describes an employer's culture.
type CultureInfo struct {
	Highlights string   `json:"highlights"`
	Reviews    []string `json:"reviews"`
}

// BalanceInfo describes an employer's work-life balance.
type BalanceInfo struct {
	Rating   string   `json:"rating"`
	Feedback []string `json:"feedback"`
}

// BenefitsInfo describes compensation and perks.
type BenefitsInfo struct {
	Salary string   `json:"salary"`
	Perks  []string `json:"perks"`
}

// ScrapedData is the intelligence report returned for one subject. Nested
// sections stay nil when no data was found; lists and maps are never nil.
type ScrapedData struct {
	CompanyInfo          map[string]string            `json:"company_info"`
	ProductDetails       map[string]string            `json:"product_details"`
	CompetitorAnalysis   map[string]CompetitorProfile `json:"competitor_analysis"`
	HowToBeatThem        *CounterStrategy             `json:"how_to_beat_them"`
	PricingComparison    *PricingComparison           `json:"pricing_comparison"`
	EventSuccessMetrics  *EventMetrics                `json:"event_success_metrics"`
	AttendeeTestimonials []string                     `json:"attendee_testimonials"`
	CompanyCulture       *CultureInfo                 `json:"company_culture"`
	WorkLifeBalance      *BalanceInfo                 `json:"work_life_balance"`
	BenefitsInfo         *BenefitsInfo                `json:"benefits_info"`
	MarketGaps           []string                     `json:"market_gaps"`
	RecentNews           []string                     `json:"recent_news"`
	CategoryInsights     map[string]SourcedAnswer     `json:"category_insights"`
	DataQuality          QualityTier                  `json:"data_quality"`
	SourcesScraped       []string                     `json:"sources_scraped"`
	ScrapingTimestamp    time.Time                    `json:"scraping_timestamp"`
}

// NewScrapedData returns a report with every list and map initialized.
func NewScrapedData() *ScrapedData {
	return &ScrapedData{
		CompanyInfo:          map[string]string{},
		ProductDetails:       map[string]string{},
		CompetitorAnalysis:   map[string]CompetitorProfile{},
		AttendeeTestimonials: []string{},
		MarketGaps:           []string{},
		RecentNews:           []string{},
		CategoryInsights:     map[string]SourcedAnswer{},
		SourcesScraped:       []string{},
	}
}
