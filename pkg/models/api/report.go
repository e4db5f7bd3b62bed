package api

import "time"

// Report is the web representation of one generated report.
type Report struct {
	State   string         `json:"state"`
	Columns map[string]any `json:"columns"`
}

// HistoryEntry is one persisted report in a history response.
type HistoryEntry struct {
	Anchor      string         `json:"anchor"`
	GeneratedAt time.Time      `json:"generated_at"`
	Columns     map[string]any `json:"columns"`
}

// Error is the JSON error envelope.
type Error struct {
	Message string `json:"message"`
}
