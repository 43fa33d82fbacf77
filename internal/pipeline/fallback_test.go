package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/model"
)

func TestEnrich_SkipsWhenSufficient(t *testing.T) {
	t.Parallel()

	fs := &fakeSearcher{}
	got := Enrich(context.Background(), NewExecutor(fs, SingleWorker, nil), model.QualitySufficient, "laptops")

	assert.Nil(t, got)
	assert.Zero(t, fs.callCount())
}

func TestEnrich_KeepsOnlySuccesses(t *testing.T) {
	t.Parallel()

	fs := &fakeSearcher{failing: []string{"customers want"}}
	got := Enrich(context.Background(), NewExecutor(fs, SingleWorker, nil), model.QualityPartial, "laptops")

	assert.Equal(t, 2, fs.callCount())
	require.Len(t, got, 1)
	assert.Contains(t, got, "category_overview")
}

func TestEnrich_AllFailed(t *testing.T) {
	t.Parallel()

	fs := &fakeSearcher{failAll: true}
	got := Enrich(context.Background(), NewExecutor(fs, SingleWorker, nil), model.QualityMinimal, "laptops")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
