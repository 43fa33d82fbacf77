package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/pipeline"
)

func TestRunStats(t *testing.T) {
	assert.Equal(t, model.RunStats{DurationMs: 1500}, runStats(nil, 1500*time.Millisecond))

	rep := &pipeline.Report{
		Queries: model.QueryBatch{"a": "q1", "b": "q2", "c": "q3"},
		Primary: model.SearchResults{
			"a": {Answer: &model.SourcedAnswer{Answer: "x"}},
			"b": {Err: errors.New("boom")},
			"c": {Answer: &model.SourcedAnswer{Answer: "y"}},
		},
		FallbackQueries: 2,
		Quality:         model.QualityPartial,
	}
	got := runStats(rep, time.Second)
	assert.Equal(t, 3, got.Queries)
	assert.Equal(t, 1, got.FailedQueries)
	assert.Equal(t, 2, got.FallbackQueries)
	assert.Equal(t, model.QualityPartial, got.Quality)
	assert.Equal(t, int64(1000), got.DurationMs)
}

func TestResearch_WithoutStore(t *testing.T) {
	env := newTestEnv(t, answerAll)
	env.Close()
	env.Store = nil

	data, runID, err := research(context.Background(), env, model.Brief{
		Product:          "Backend Engineer",
		ShortDescription: "We are hiring a backend engineer",
	})
	require.NoError(t, err)
	assert.Empty(t, runID)
	require.NotNil(t, data)
	assert.NotEmpty(t, data.DataQuality)
}
