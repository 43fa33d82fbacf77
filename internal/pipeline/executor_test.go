package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/adscout/internal/model"
)

func TestExecute_IsolatesFailures(t *testing.T) {
	t.Parallel()

	fs := &fakeSearcher{failing: []string{"complaints"}}
	exec := NewExecutor(fs, SingleWorker, nil)

	batch := model.QueryBatch{
		"competitor_1_overview":   "What are the key features of Acme?",
		"competitor_1_weaknesses": "What are the main customer complaints about Acme?",
		"market_gaps":             "What gaps exist?",
	}
	results := exec.Execute(context.Background(), batch)

	require.Len(t, results, 3)
	assert.True(t, results["competitor_1_weaknesses"].Failed())
	assert.ErrorIs(t, results["competitor_1_weaknesses"].Err, errSearchDown)
	assert.False(t, results["competitor_1_overview"].Failed())
	assert.False(t, results["market_gaps"].Failed())
	assert.Equal(t, 3, fs.callCount(), "a failure must not abort the batch")
}

func TestExecute_SortedOrder(t *testing.T) {
	t.Parallel()

	fs := &fakeSearcher{}
	exec := NewExecutor(fs, SingleWorker, nil)

	exec.Execute(context.Background(), model.QueryBatch{"c": "third", "a": "first", "b": "second"})

	assert.Equal(t, []string{"first", "second", "third"}, fs.calls)
}

func TestExecute_NilAnswerIsFailure(t *testing.T) {
	t.Parallel()

	s := SearcherFunc(func(context.Context, string) (*model.SourcedAnswer, error) { return nil, nil })
	results := NewExecutor(s, SingleWorker, nil).Execute(context.Background(), model.QueryBatch{"q": "x"})

	assert.True(t, results["q"].Failed())
	assert.ErrorIs(t, results["q"].Err, errEmptyAnswer)
}

func TestExecute_Observer(t *testing.T) {
	t.Parallel()

	type call struct {
		id  string
		err error
	}
	var seen []call
	obs := func(id string, _ time.Duration, err error) { seen = append(seen, call{id, err}) }

	fs := &fakeSearcher{failing: []string{"bad"}}
	NewExecutor(fs, SingleWorker, obs).Execute(context.Background(), model.QueryBatch{"a": "good", "b": "bad"})

	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[0].id)
	assert.NoError(t, seen[0].err)
	assert.Equal(t, "b", seen[1].id)
	assert.Error(t, seen[1].err)
}

func TestExecute_CancelledContextFailsRemaining(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	s := SearcherFunc(func(context.Context, string) (*model.SourcedAnswer, error) {
		calls++
		cancel()
		return &model.SourcedAnswer{Answer: "ok"}, nil
	})

	results := NewExecutor(s, SingleWorker, nil).Execute(ctx, model.QueryBatch{"a": "1", "b": "2", "c": "3"})

	assert.Equal(t, 1, calls)
	assert.False(t, results["a"].Failed())
	assert.True(t, results["b"].Failed())
	assert.ErrorIs(t, results["c"].Err, context.Canceled)
}

func TestNewExecutor_ClampsWorkers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, NewExecutor(&fakeSearcher{}, ExecutionPolicy{Workers: 8}, nil).policy.Workers)
	assert.Equal(t, 1, NewExecutor(&fakeSearcher{}, ExecutionPolicy{}, nil).policy.Workers)
}

func TestExecute_Limiter(t *testing.T) {
	t.Parallel()

	policy := ExecutionPolicy{Workers: 1, Limiter: rate.NewLimiter(rate.Inf, 1)}
	fs := &fakeSearcher{}

	results := NewExecutor(fs, policy, nil).Execute(context.Background(), model.QueryBatch{"a": "1", "b": "2"})

	assert.Equal(t, 2, results.Succeeded())
}
