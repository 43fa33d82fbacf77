package model

import "sort"

// QueryBatch maps a query id to its natural-language query text.
type QueryBatch map[string]string

// IDs returns the batch's query ids in sorted order.
func (b QueryBatch) IDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Source is one citation backing a SourcedAnswer.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SourcedAnswer is a synthesized answer plus the sources it cites.
type SourcedAnswer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// SourceNames returns up to limit source names in order.
func (a SourcedAnswer) SourceNames(limit int) []string {
	out := make([]string, 0, min(limit, len(a.Sources)))
	for _, s := range a.Sources {
		if len(out) == limit {
			break
		}
		out = append(out, s.Name)
	}
	return out
}

// SourceURLs returns up to limit source URLs in order.
func (a SourcedAnswer) SourceURLs(limit int) []string {
	out := make([]string, 0, min(limit, len(a.Sources)))
	for _, s := range a.Sources {
		if len(out) == limit {
			break
		}
		out = append(out, s.URL)
	}
	return out
}

// SearchResult is the outcome of one query. A nil Answer marks the query
// as failed; Err carries the reason when known.
type SearchResult struct {
	Answer *SourcedAnswer `json:"answer,omitempty"`
	Err    error          `json:"-"`
}

// Failed reports whether the query produced no answer.
func (r SearchResult) Failed() bool {
	return r.Answer == nil
}

// SearchResults maps query ids to their outcomes.
type SearchResults map[string]SearchResult

// Succeeded returns the number of non-failed results.
func (r SearchResults) Succeeded() int {
	n := 0
	for _, res := range r {
		if !res.Failed() {
			n++
		}
	}
	return n
}

// Answers returns the non-failed answers keyed by query id.
func (r SearchResults) Answers() map[string]SourcedAnswer {
	out := make(map[string]SourcedAnswer, len(r))
	for id, res := range r {
		if !res.Failed() {
			out[id] = *res.Answer
		}
	}
	return out
}

// QualityTier grades how much of a batch succeeded.
type QualityTier string

const (
	QualitySufficient QualityTier = "SUFFICIENT"
	QualityPartial    QualityTier = "PARTIAL"
	QualityMinimal    QualityTier = "MINIMAL"
)
