package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/pkg/linkup"
	"github.com/sells-group/adscout/pkg/linkup/mocks"
)

func TestLinkupSearcher_Search(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockClient(t)
	client.On("Search", mock.Anything, linkup.SearchRequest{
		Query:      "Who makes the best laptops?",
		Depth:      linkup.DepthStandard,
		OutputType: linkup.OutputSourcedAnswer,
	}).Return(&linkup.SearchResponse{
		Answer:  "Several vendors.",
		Sources: []linkup.Source{{Name: "Site", URL: "https://site.example", Snippet: "s"}},
	}, nil)

	s := NewLinkupSearcher(client)
	got, err := s.Search(context.Background(), "Who makes the best laptops?")
	require.NoError(t, err)

	assert.Equal(t, &model.SourcedAnswer{
		Answer:  "Several vendors.",
		Sources: []model.Source{{Name: "Site", URL: "https://site.example", Snippet: "s"}},
	}, got)
	assert.Equal(t, linkup.DepthStandard, s.Depth())
}

func TestLinkupSearcher_Error(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockClient(t)
	client.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

	got, err := NewLinkupSearcher(client).Search(context.Background(), "q")
	assert.Nil(t, got)
	assert.EqualError(t, err, "quota exceeded")
}
