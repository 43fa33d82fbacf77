// Package store persists research run history.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adscout/internal/model"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = eris.New("store: run not found")

const defaultListLimit = 100

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status       model.RunStatus   `json:"status,omitempty"`
	Type         model.SubjectType `json:"type,omitempty"`
	CreatedAfter time.Time         `json:"created_after,omitempty"`
	Limit        int               `json:"limit,omitempty"`
	Offset       int               `json:"offset,omitempty"`
}

func (f RunFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Store records research runs. Runs are created as running and finish
// exactly once as complete or failed.
type Store interface {
	CreateRun(ctx context.Context, subject model.Subject) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, result *model.ScrapedData, stats model.RunStats) error
	FailRun(ctx context.Context, runID string, errMsg string, stats model.RunStats) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

func notFound(runID string) error {
	return eris.Wrapf(ErrRunNotFound, "store: run %s", runID)
}
