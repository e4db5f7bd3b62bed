package report

import (
	"testing"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollate_MergesSourceMetrics(t *testing.T) {
	rep := Collate([]domain.Metrics{
		{"total_calls": 10, "lead_calls": 4},
		{"total_income": 999.5},
	})

	assert.Equal(t, 10.0, rep["total_calls"])
	assert.Equal(t, 999.5, rep["total_income"])
	// Derived fields need all their inputs.
	assert.NotContains(t, rep, "total_booked")
	assert.NotContains(t, rep, "leads_total")
	assert.NotContains(t, rep, "booking_rate")
}

func TestCollate_DerivedFields(t *testing.T) {
	rep := Collate([]domain.Metrics{
		{"inbound_booked": 3, "lead_calls": 8},
		{"manual_booked": 2},
		{"online_bookings_converted": 1, "online_bookings_dismissed_lead_achievable": 1},
	})

	assert.Equal(t, 6.0, rep["total_booked"])
	assert.Equal(t, 12.0, rep["leads_total"])
	assert.Equal(t, 0.5, rep["booking_rate"])
}

func TestCollate_ZeroLeadsGuardsBookingRate(t *testing.T) {
	rep := Collate([]domain.Metrics{
		{"inbound_booked": 0, "lead_calls": 0},
		{"manual_booked": 0},
		{"online_bookings_converted": 0, "online_bookings_dismissed_lead_achievable": 0},
	})

	assert.Equal(t, 0.0, rep["leads_total"])
	assert.Equal(t, 0.0, rep["booking_rate"])
}

func TestEnrich_Ratios(t *testing.T) {
	rep := domain.Report{
		"estimated_revenue":     1000.0,
		"completed_income_jobs": 3.0,
		"total_booked":          6.0,
		"leads_total":           12.0,
		"booked_converted":      1.0,
		"opportunities_booked":  4.0,
	}

	got := Enrich(rep)

	assert.Equal(t, 333.33, got["avg_rev_per_job"])
	assert.Equal(t, 0.5, got["booking_rate"])
	assert.Equal(t, 0.25, got["conversion_rate"])
}

func TestEnrich_ZeroDenominators(t *testing.T) {
	rep := domain.Report{
		"estimated_revenue":     0.0,
		"completed_income_jobs": 0.0,
		"total_booked":          0.0,
		"leads_total":           0.0,
		"booked_converted":      0.0,
		"opportunities_booked":  0.0,
	}

	got := Enrich(rep)

	assert.Equal(t, 0.0, got["avg_rev_per_job"])
	assert.Equal(t, 0.0, got["booking_rate"])
	assert.Equal(t, 0.0, got["conversion_rate"])
}

func TestEnrich_MissingDependenciesAreSkipped(t *testing.T) {
	rep := domain.Report{"estimated_revenue": 500.0}

	got := Enrich(rep)

	assert.NotContains(t, got, "avg_rev_per_job")
	assert.NotContains(t, got, "booking_rate")
	assert.NotContains(t, got, "conversion_rate")
}

func TestEnrich_Idempotent(t *testing.T) {
	rep := domain.Report{
		"estimated_revenue":     1000.0,
		"completed_income_jobs": 3.0,
		"total_booked":          5.0,
		"leads_total":           8.0,
		"booked_converted":      2.0,
		"opportunities_booked":  3.0,
	}

	once := Enrich(rep)
	snapshot := make(domain.Report, len(once))
	for k, v := range once {
		snapshot[k] = v
	}

	twice := Enrich(once)
	require.Equal(t, snapshot, twice)
}
