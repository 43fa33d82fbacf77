package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/adscout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	subject      TEXT NOT NULL,
	subject_type TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'running',
	result       TEXT,
	stats        TEXT NOT NULL DEFAULT '{}',
	error        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_subject_type ON runs(subject_type);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

const runColumns = `id, subject, status, result, stats, error, created_at, updated_at`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, subject model.Subject) (*model.Run, error) {
	id := uuid.New().String()
	now := s.now()

	subjectJSON, err := json.Marshal(subject)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal subject")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, subject, subject_type, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(subjectJSON), string(subject.Type), string(model.RunStatusRunning), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		Subject:   subject,
		Status:    model.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, result *model.ScrapedData, stats model.RunStats) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal stats")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, result = ?, stats = ?, updated_at = ? WHERE id = ?`,
		string(model.RunStatusComplete), string(resultJSON), string(statsJSON), s.now(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkRowsAffected(res, runID)
}

func (s *SQLiteStore) FailRun(ctx context.Context, runID string, errMsg string, stats model.RunStats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal stats")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, stats = ?, updated_at = ? WHERE id = ?`,
		string(model.RunStatusFailed), errMsg, string(statsJSON), s.now(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail run %s", runID)
	}
	return checkRowsAffected(res, runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`,
		runID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return r, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Type != "" {
		query += ` AND subject_type = ?`
		args = append(args, string(filter.Type))
	}
	if !filter.CreatedAfter.IsZero() {
		query += ` AND created_at > ?`
		args = append(args, filter.CreatedAfter.UTC())
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	runs := []model.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// helpers

func checkRowsAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return notFound(runID)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var r model.Run
	var status, subjectJSON, statsJSON string
	var resultJSON sql.NullString

	if err := row.Scan(&r.ID, &subjectJSON, &status, &resultJSON, &statsJSON, &r.Error, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Status = model.RunStatus(status)

	var result []byte
	if resultJSON.Valid {
		result = []byte(resultJSON.String)
	}
	if err := decodeRun(&r, []byte(subjectJSON), result, []byte(statsJSON)); err != nil {
		return nil, err
	}
	return &r, nil
}

// decodeRun fills the JSON-encoded columns of r.
func decodeRun(r *model.Run, subject, result, stats []byte) error {
	if err := json.Unmarshal(subject, &r.Subject); err != nil {
		return eris.Wrap(err, "unmarshal subject")
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &r.Stats); err != nil {
			return eris.Wrap(err, "unmarshal stats")
		}
	}
	if len(result) > 0 && string(result) != "null" {
		r.Result = &model.ScrapedData{}
		if err := json.Unmarshal(result, r.Result); err != nil {
			return eris.Wrap(err, "unmarshal result")
		}
	}
	return nil
}
