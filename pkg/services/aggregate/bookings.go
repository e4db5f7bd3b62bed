package aggregate

import (
	"github.com/fieldops/pulse/pkg/extract"
	"github.com/fieldops/pulse/pkg/models/domain"
)

// Dismissing reasons that mark a booking as an achievable lead; every
// other dismissal in unachievableReasons was never winnable.
var achievableReasons = map[float64]bool{28: true, 29: true}

var unachievableReasons = map[float64]bool{
	32:        true,
	70968574:  true,
	142829723: true,
}

// Bookings counts online booking outcomes.
func Bookings() (Spec, error) {
	const (
		bookingStatus = iota
		bookingDismissReasonID
		bookingProviderID
	)
	fields := []extract.Field{
		extract.F(extract.KindString, "status"),
		extract.F(extract.KindInt, "dismissingReasonId"),
		extract.F(extract.KindInt, "bookingProviderId"),
	}

	return newSpec(domain.SourceBookings, fields, func(rows []extract.Row) (domain.Metrics, error) {
		metrics := domain.Metrics{
			"online_bookings_converted":                   0,
			"online_bookings_dismissed_lead_unachievable": 0,
			"online_bookings_dismissed_lead_achievable":   0,
		}

		for _, row := range rows {
			providerID, _ := asNumber(row[bookingProviderID])
			reasonID, _ := asNumber(row[bookingDismissReasonID])

			if providerID != -1 && asString(row[bookingStatus]) == "Converted" {
				metrics["online_bookings_converted"]++
			}
			if unachievableReasons[reasonID] {
				metrics["online_bookings_dismissed_lead_unachievable"]++
			}
			if achievableReasons[reasonID] {
				metrics["online_bookings_dismissed_lead_achievable"]++
			}
		}

		return metrics, nil
	})
}
