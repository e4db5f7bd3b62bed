package aggregate

import (
	"context"
	"testing"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookings_ConvertedAndDismissed(t *testing.T) {
	spec, err := Bookings()
	require.NoError(t, err)

	records := []domain.RawRecord{
		{"status": "Converted", "bookingProviderId": float64(42)},
		// Converted but not via a provider: not an online conversion.
		{"status": "Converted"},
		{"status": "Dismissed", "dismissingReasonId": float64(32)},
		{"status": "Dismissed", "dismissingReasonId": float64(70968574)},
		{"status": "Dismissed", "dismissingReasonId": float64(142829723)},
		{"status": "Dismissed", "dismissingReasonId": float64(28)},
		{"status": "Dismissed", "dismissingReasonId": float64(29)},
		{"status": "Dismissed", "dismissingReasonId": float64(99)},
	}

	metrics, err := spec.Reduce(context.Background(), records, sydney)
	require.NoError(t, err)

	assert.Equal(t, 1.0, metrics["online_bookings_converted"])
	assert.Equal(t, 3.0, metrics["online_bookings_dismissed_lead_unachievable"])
	assert.Equal(t, 2.0, metrics["online_bookings_dismissed_lead_achievable"])
}

func TestBookings_AbsentReasonCountsNowhere(t *testing.T) {
	spec, err := Bookings()
	require.NoError(t, err)

	metrics, err := spec.Reduce(context.Background(), []domain.RawRecord{
		{"status": "Converted", "bookingProviderId": float64(42)},
	}, sydney)
	require.NoError(t, err)

	assert.Equal(t, 1.0, metrics["online_bookings_converted"])
	assert.Equal(t, 0.0, metrics["online_bookings_dismissed_lead_unachievable"])
	assert.Equal(t, 0.0, metrics["online_bookings_dismissed_lead_achievable"])
}
