package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fieldops/pulse/pkg/models/store"
	"github.com/rs/zerolog"
)

// HistoryReader serves read-only report history queries over any SQL
// backend holding the reports table.
type HistoryReader interface {
	ListRange(ctx context.Context, state, fromAnchor, toAnchor string) ([]store.ReportRecord, error)
}

type historyReader struct {
	db *sql.DB
}

func NewHistoryReader(db *sql.DB) (HistoryReader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &historyReader{db: db}, nil
}

func (r *historyReader) ListRange(ctx context.Context, state, fromAnchor, toAnchor string) ([]store.ReportRecord, error) {
	logger := zerolog.Ctx(ctx)
	query := `
		SELECT state, anchor, generated_at, columns
		FROM reports
		WHERE state = ? AND anchor >= ? AND anchor <= ?
		ORDER BY anchor ASC`

	rows, err := r.db.QueryContext(ctx, query, state, fromAnchor, toAnchor)
	if err != nil {
		return nil, fmt.Errorf("report history query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close report history rows")
		}
	}(rows)

	var records []store.ReportRecord
	for rows.Next() {
		var record store.ReportRecord
		var columns string
		if err := rows.Scan(&record.State, &record.Anchor, &record.GeneratedAt, &columns); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(columns), &record.Columns); err != nil {
			return nil, fmt.Errorf("unmarshal report columns: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
