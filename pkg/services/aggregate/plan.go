package aggregate

import "github.com/fieldops/pulse/pkg/models/domain"

// sourceColumns maps each source to every report column it contributes
// to, derived metrics included. A column may appear under several
// sources: leads_total needs calls, jobs-created and bookings.
var sourceColumns = map[domain.Source]map[string]bool{
	domain.SourceCalls: {
		"total_calls":               true,
		"lead_calls":                true,
		"inbound_booked":            true,
		"unbooked_unachievable":     true,
		"abandoned":                 true,
		"leads_total":               true,
		"total_booked":              true,
		"plumber_unavailable_calls": true,
		"outside_service_area":      true,
		"service_not_provided":      true,
	},
	domain.SourceJobsCreated: {
		"manual_booked": true,
		"leads_total":   true,
		"total_booked":  true,
	},
	domain.SourceJobsCompleted: {
		"completed_income_jobs":       true,
		"estimated_revenue":           true,
		"opportunities_booked":        true,
		"booked_converted":            true,
		"opportunity_conversion_rate": true,
	},
	domain.SourceBookings: {
		"online_bookings_dismissed_lead_unachievable": true,
		"online_bookings_converted":                   true,
		"online_bookings_dismissed_lead_achievable":   true,
		"leads_total":  true,
		"total_booked": true,
	},
	domain.SourcePayments: {
		"total_income": true,
	},
	domain.SourceSoldEstimates: {
		"sales": true,
	},
}

// Plan selects the sources that must be queried to produce the requested
// columns: a source is selected iff it contributes at least one of them.
// The result is a set; callers needing a stable order should iterate
// domain.Sources.
func Plan(columns []string) map[domain.Source]bool {
	requested := make(map[string]bool, len(columns))
	for _, c := range columns {
		requested[c] = true
	}

	selected := make(map[domain.Source]bool)
	for source, cols := range sourceColumns {
		for c := range cols {
			if requested[c] {
				selected[source] = true
				break
			}
		}
	}
	return selected
}
