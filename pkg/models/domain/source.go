package domain

import "fmt"

// Source identifies one upstream data category.
type Source string

const (
	SourceCalls         Source = "calls"
	SourceJobsCreated   Source = "jobs_created"
	SourceJobsCompleted Source = "jobs_completed"
	SourceBookings      Source = "bookings"
	SourcePayments      Source = "payments"
	SourceSoldEstimates Source = "sold_estimates"
)

// Sources lists every upstream data category in a stable order.
var Sources = []Source{
	SourceCalls,
	SourceJobsCreated,
	SourceJobsCompleted,
	SourceBookings,
	SourcePayments,
	SourceSoldEstimates,
}

// ParseSource validates a source name.
func ParseSource(name string) (Source, error) {
	for _, s := range Sources {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", name)
}

// RawRecord is one untyped nested record as returned by the upstream API.
type RawRecord = map[string]any
