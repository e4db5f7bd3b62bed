package aggregate

import (
	"time"

	"github.com/fieldops/pulse/pkg/extract"
	"github.com/fieldops/pulse/pkg/models/domain"
)

const (
	callDuration = iota
	callType
	callReasonID
	callReasonLead
	callReasonName
)

const leadDurationFloor = 59 * time.Second

// Calls counts inbound call outcomes. A call is a lead when its type is
// neither Excused nor NotLead and it ran longer than 59 seconds, or it
// was Booked, or it was Unbooked for a lead-eligible reason.
func Calls() (Spec, error) {
	fields := []extract.Field{
		extract.F(extract.KindString, "leadCall", "duration"),
		extract.F(extract.KindString, "leadCall", "callType"),
		extract.F(extract.KindInt, "leadCall", "reason", "id"),
		extract.F(extract.KindBool, "leadCall", "reason", "lead"),
		extract.F(extract.KindString, "leadCall", "reason", "name"),
	}

	return newSpec(domain.SourceCalls, fields, func(rows []extract.Row) (domain.Metrics, error) {
		metrics := domain.Metrics{
			"total_calls":               0,
			"lead_calls":                0,
			"inbound_booked":            0,
			"unbooked_unachievable":     0,
			"abandoned":                 0,
			"plumber_unavailable_calls": 0,
			"outside_service_area":      0,
			"service_not_provided":      0,
		}

		for _, row := range rows {
			dur, err := parseCallDuration(asString(row[callDuration]))
			if err != nil {
				return nil, err
			}
			ct := asString(row[callType])
			reasonID, _ := asNumber(row[callReasonID])

			metrics["total_calls"]++
			if (ct != "Excused" && ct != "NotLead" && dur > leadDurationFloor) ||
				ct == "Booked" ||
				(asBool(row[callReasonLead]) && ct == "Unbooked") {
				metrics["lead_calls"]++
			}
			if ct == "Abandoned" {
				metrics["abandoned"]++
			}
			if ct == "Booked" {
				metrics["inbound_booked"]++
			}
			if ct == "Unbooked" && reasonID != 28 && reasonID != 29 {
				metrics["unbooked_unachievable"]++
			}

			switch asString(row[callReasonName]) {
			case "No Plumber Availability":
				metrics["plumber_unavailable_calls"]++
			case "Outside of Service Area":
				metrics["outside_service_area"]++
			case "Service Not Offered":
				metrics["service_not_provided"]++
			}
		}

		return metrics, nil
	})
}
