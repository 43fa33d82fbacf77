package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sells-group/adscout/internal/model"
)

var errSearchDown = errors.New("search unavailable")

// fakeSearcher answers queries from a script. Queries containing any
// failing substring return errSearchDown; the rest get answerFor(query).
type fakeSearcher struct {
	mu        sync.Mutex
	calls     []string
	failAll   bool
	failing   []string
	answerFor func(query string) *model.SourcedAnswer
}

func (f *fakeSearcher) Search(_ context.Context, query string) (*model.SourcedAnswer, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()

	if f.failAll {
		return nil, errSearchDown
	}
	for _, sub := range f.failing {
		if strings.Contains(query, sub) {
			return nil, errSearchDown
		}
	}
	if f.answerFor != nil {
		return f.answerFor(query), nil
	}
	return cannedAnswer(query), nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func cannedAnswer(query string) *model.SourcedAnswer {
	return &model.SourcedAnswer{
		Answer: "Summary for: " + query + "\n" +
			"- Battery life is shorter than advertised\n" +
			"• Customer support is slow to respond\n" +
			"short\n" +
			"- Price increased twice this year",
		Sources: []model.Source{
			{Name: "Review Site", URL: "https://reviews.example.com/a", Snippet: "..."},
			{Name: "Forum", URL: "https://forum.example.com/b", Snippet: "..."},
			{Name: "News", URL: "https://news.example.com/c", Snippet: "..."},
			{Name: "Blog", URL: "https://blog.example.com/d", Snippet: "..."},
		},
	}
}
