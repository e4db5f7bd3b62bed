package report

import (
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
)

// SinceMidnight bounds a current-day run: last midnight in the report
// timezone up to now.
func SinceMidnight(now time.Time, loc *time.Location) domain.TimeWindow {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return domain.TimeWindow{Start: midnight, End: local}
}

// DayWindow bounds a full-day run for an explicit past date.
func DayWindow(day time.Time, loc *time.Location) domain.TimeWindow {
	return domain.TimeWindow{
		Start: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc),
	}
}

// EndTimestampUTC renders the report end time as an ISO-8601 UTC
// timestamp with a Z suffix, the anchor used for current-day reports.
func EndTimestampUTC(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
