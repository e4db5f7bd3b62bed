package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/models/store"
)

// Store persists generated reports keyed by state and time anchor.
// Re-generating a report for the same state and anchor replaces it.
type Store interface {
	Add(ctx context.Context, state, anchor string, rep domain.Report) error
	Get(ctx context.Context, state, anchor string) (*store.ReportRecord, error)
	List(ctx context.Context, state string, limit int) ([]store.ReportRecord, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) Add(ctx context.Context, state, anchor string, rep domain.Report) error {
	columns, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report columns: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO reports (state, anchor, generated_at, columns)
		VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, state, anchor, time.Now().UTC(), string(columns)); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, state, anchor string) (*store.ReportRecord, error) {
	query := `
		SELECT state, anchor, generated_at, columns
		FROM reports
		WHERE state = ? AND anchor = ?`

	row := s.db.QueryRowContext(ctx, query, state, anchor)
	record, err := scanReport(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no report for %s at %s", state, anchor)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return record, nil
}

func (s *reportStore) List(ctx context.Context, state string, limit int) ([]store.ReportRecord, error) {
	query := `
		SELECT state, anchor, generated_at, columns
		FROM reports
		WHERE state = ?
		ORDER BY generated_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, state, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []store.ReportRecord
	for rows.Next() {
		record, err := scanReport(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanReport(scan func(dest ...any) error) (*store.ReportRecord, error) {
	var record store.ReportRecord
	var columns string
	if err := scan(&record.State, &record.Anchor, &record.GeneratedAt, &columns); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(columns), &record.Columns); err != nil {
		return nil, fmt.Errorf("unmarshal report columns: %w", err)
	}
	return &record, nil
}
