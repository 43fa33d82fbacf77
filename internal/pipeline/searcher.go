package pipeline

import (
	"context"

	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/pkg/linkup"
)

// LinkupSearcher adapts a Linkup client to the Searcher interface with
// fixed search parameters.
type LinkupSearcher struct {
	client     linkup.Client
	depth      string
	outputType string
}

// NewLinkupSearcher creates a searcher issuing standard-depth sourcedAnswer
// searches.
func NewLinkupSearcher(client linkup.Client) *LinkupSearcher {
	return &LinkupSearcher{
		client:     client,
		depth:      linkup.DepthStandard,
		outputType: linkup.OutputSourcedAnswer,
	}
}

// Depth returns the search depth sent with every query.
func (s *LinkupSearcher) Depth() string {
	return s.depth
}

// Search implements Searcher.
func (s *LinkupSearcher) Search(ctx context.Context, query string) (*model.SourcedAnswer, error) {
	resp, err := s.client.Search(ctx, linkup.SearchRequest{
		Query:      query,
		Depth:      s.depth,
		OutputType: s.outputType,
	})
	if err != nil {
		return nil, err
	}

	answer := &model.SourcedAnswer{
		Answer:  resp.Answer,
		Sources: make([]model.Source, 0, len(resp.Sources)),
	}
	for _, src := range resp.Sources {
		answer.Sources = append(answer.Sources, model.Source{
			Name:    src.Name,
			URL:     src.URL,
			Snippet: src.Snippet,
		})
	}
	return answer, nil
}
