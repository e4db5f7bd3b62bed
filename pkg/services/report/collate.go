package report

import (
	"math"

	"github.com/fieldops/pulse/pkg/models/domain"
)

// Collate merges per-source metrics into one flat report and adds the
// first-order derived fields whose inputs are all present. Sources are
// designed not to collide on keys; a duplicate key keeps the last value.
// A derived field with a missing dependency is silently omitted.
func Collate(parts []domain.Metrics) domain.Report {
	rep := make(domain.Report)
	for _, metrics := range parts {
		for k, v := range metrics {
			rep[k] = v
		}
	}

	inbound, hasInbound := metric(rep, "inbound_booked")
	manual, hasManual := metric(rep, "manual_booked")
	online, hasOnline := metric(rep, "online_bookings_converted")
	if hasInbound && hasManual && hasOnline {
		rep["total_booked"] = inbound + manual + online
	}

	leadCalls, hasLeadCalls := metric(rep, "lead_calls")
	achievable, hasAchievable := metric(rep, "online_bookings_dismissed_lead_achievable")
	if hasLeadCalls && hasManual && hasOnline && hasAchievable {
		rep["leads_total"] = leadCalls + manual + online + achievable
	}

	booked, hasBooked := metric(rep, "total_booked")
	leads, hasLeads := metric(rep, "leads_total")
	if hasBooked && hasLeads {
		rep["booking_rate"] = safeDivide(booked, leads)
	}

	return rep
}

// Enrich adds the second-order ratios, each guarded by the presence of
// its dependencies and by a zero denominator, rounded to 2 decimals.
// Re-running on an enriched report recomputes identical values.
func Enrich(rep domain.Report) domain.Report {
	revenue, hasRevenue := metric(rep, "estimated_revenue")
	incomeJobs, hasIncomeJobs := metric(rep, "completed_income_jobs")
	if hasRevenue && hasIncomeJobs {
		rep["avg_rev_per_job"] = round2(safeDivide(revenue, incomeJobs))
	}

	booked, hasBooked := metric(rep, "total_booked")
	leads, hasLeads := metric(rep, "leads_total")
	if hasBooked && hasLeads {
		rep["booking_rate"] = round2(safeDivide(booked, leads))
	}

	converted, hasConverted := metric(rep, "booked_converted")
	opportunities, hasOpportunities := metric(rep, "opportunities_booked")
	if hasConverted && hasOpportunities {
		rep["conversion_rate"] = round2(safeDivide(converted, opportunities))
	}

	return rep
}

func metric(rep domain.Report, key string) (float64, bool) {
	switch v := rep[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
