package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adscout/internal/model"
)

// List caps applied when structuring answers.
const (
	maxSources     = 3
	maxWeaknesses  = 5
	maxHeadToHead  = 3
	maxGaps        = 5
	maxStrategyGap = 3
	maxTestimonial = 5
	maxReviews     = 3
	maxPerks       = 5
	salaryRunes    = 200
)

// Evidence is the input to a Structurer: the subject and its successful
// primary answers keyed by query id.
type Evidence struct {
	Subject model.Subject
	Answers map[string]model.SourcedAnswer
}

// matching returns the answers whose query id contains any of substrs,
// ordered by query id.
func (e Evidence) matching(substrs ...string) []model.SourcedAnswer {
	ids := make([]string, 0, len(e.Answers))
	for id := range e.Answers {
		for _, sub := range substrs {
			if strings.Contains(id, sub) {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)

	out := make([]model.SourcedAnswer, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.Answers[id])
	}
	return out
}

// lookup returns the answer for an exact query id.
func (e Evidence) lookup(id string) (model.SourcedAnswer, bool) {
	a, ok := e.Answers[id]
	return a, ok
}

// Structurer turns evidence into the type-specific sections of a report.
type Structurer interface {
	Structure(ev Evidence, out *model.ScrapedData)
}

// StructurerFor returns the structurer for a subject type.
func StructurerFor(t model.SubjectType) (Structurer, error) {
	switch t {
	case model.SubjectProduct:
		return productStructurer{}, nil
	case model.SubjectEvent:
		return eventStructurer{}, nil
	case model.SubjectJob:
		return jobStructurer{}, nil
	case model.SubjectGeneric:
		return genericStructurer{}, nil
	default:
		return nil, eris.Errorf("pipeline: no structurer for subject type %q", t)
	}
}

// Stamp holds the report fields shared by every subject type.
type Stamp struct {
	Quality  model.QualityTier
	Insights map[string]model.SourcedAnswer
	At       time.Time
}

// Structure builds the full report for a subject.
func Structure(ev Evidence, st Stamp) (*model.ScrapedData, error) {
	s, err := StructurerFor(ev.Subject.Type)
	if err != nil {
		return nil, err
	}

	out := model.NewScrapedData()
	s.Structure(ev, out)

	out.DataQuality = st.Quality
	for id, a := range st.Insights {
		out.CategoryInsights[id] = a
	}
	out.SourcesScraped = uniqueSourceURLs(ev.Answers)
	out.ScrapingTimestamp = st.At
	return out, nil
}

// uniqueSourceURLs collects distinct source URLs across answers, ordered
// by query id and then by citation order.
func uniqueSourceURLs(answers map[string]model.SourcedAnswer) []string {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	seen := make(map[string]struct{})
	out := []string{}
	for _, id := range ids {
		for _, src := range answers[id].Sources {
			if src.URL == "" {
				continue
			}
			if _, ok := seen[src.URL]; ok {
				continue
			}
			seen[src.URL] = struct{}{}
			out = append(out, src.URL)
		}
	}
	return out
}

type genericStructurer struct{}

func (genericStructurer) Structure(ev Evidence, out *model.ScrapedData) {
	out.CompanyInfo["subject_name"] = ev.Subject.Name
	if a, ok := ev.lookup("general_info"); ok {
		out.ProductDetails["overview"] = a.Answer
	}
}
