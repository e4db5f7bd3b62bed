package store

import "time"

// ReportRecord is one persisted report: the flat column map plus the
// state and time anchor it was generated for.
type ReportRecord struct {
	State       string
	Anchor      string
	GeneratedAt time.Time
	Columns     map[string]any
}
