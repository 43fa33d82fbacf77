package model

import (
	"strings"
)

// MaxCompetitors bounds how many named competitors are researched per brief.
const MaxCompetitors = 2

// SubjectType classifies what an ad is promoting.
type SubjectType string

const (
	SubjectProduct SubjectType = "product"
	SubjectEvent   SubjectType = "event"
	SubjectJob     SubjectType = "job"
	// SubjectGeneric is used when the brief fits none of the known types.
	SubjectGeneric SubjectType = "generic"
)

// Valid reports whether t is one of the known subject types.
func (t SubjectType) Valid() bool {
	switch t {
	case SubjectProduct, SubjectEvent, SubjectJob, SubjectGeneric:
		return true
	default:
		return false
	}
}

// Brief is the campaign brief produced by the upstream classifier.
type Brief struct {
	Product          string   `json:"product"`
	ShortDescription string   `json:"short_description"`
	TargetAudience   string   `json:"target_audience,omitempty"`
	Objective        string   `json:"objective,omitempty"`
	PrimaryPlatforms []string `json:"primary_platforms,omitempty"`
	Budget           string   `json:"budget,omitempty"`
	BrandVoice       string   `json:"brand_voice,omitempty"`
	KeyMessages      []string `json:"key_messages,omitempty"`
	VisualDirection  string   `json:"visual_direction,omitempty"`
	Constraints      string   `json:"constraints,omitempty"`
	SuccessMetrics   []string `json:"success_metrics,omitempty"`
	Price            string   `json:"price,omitempty"`
	IsNewProduct     bool     `json:"is_new_product,omitempty"`
	Competitors      []string `json:"competitors,omitempty"`

	// Optional overrides for the keyword classifier.
	AdType   SubjectType `json:"ad_type,omitempty"`
	Category string      `json:"category,omitempty"`
}

// Subject is a classified brief ready for research. Construct it with
// NewSubject so the competitor bound is applied.
type Subject struct {
	Type        SubjectType `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       string      `json:"price,omitempty"`
	Competitors []string    `json:"competitors"`
	KeyMessages []string    `json:"key_messages"`
}

// NewSubject builds a Subject, dropping blank competitors and key messages
// and keeping at most MaxCompetitors competitors.
func NewSubject(typ SubjectType, name, description, category, price string, competitors, keyMessages []string) Subject {
	comps := compact(competitors)
	if len(comps) > MaxCompetitors {
		comps = comps[:MaxCompetitors]
	}
	return Subject{
		Type:        typ,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Price:       strings.TrimSpace(price),
		Competitors: comps,
		KeyMessages: compact(keyMessages),
	}
}

// HasPrice reports whether a price was supplied.
func (s Subject) HasPrice() bool {
	return s.Price != ""
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
