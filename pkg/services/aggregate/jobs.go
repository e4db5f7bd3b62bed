package aggregate

import (
	"fmt"

	"github.com/fieldops/pulse/pkg/extract"
	"github.com/fieldops/pulse/pkg/models/domain"
)

// gstRate is the tax component included in upstream job totals.
const gstRate = 1.1

// JobsCreated counts manually booked jobs: jobs with neither an
// originating call nor an originating booking.
func JobsCreated() (Spec, error) {
	const (
		jobLeadCallID = iota
		jobBookingID
	)
	fields := []extract.Field{
		extract.F(extract.KindInt, "leadCallId"),
		extract.F(extract.KindInt, "bookingId"),
	}

	return newSpec(domain.SourceJobsCreated, fields, func(rows []extract.Row) (domain.Metrics, error) {
		metrics := domain.Metrics{"manual_booked": 0}
		for _, row := range rows {
			callID, _ := asNumber(row[jobLeadCallID])
			bookingID, _ := asNumber(row[jobBookingID])
			if callID == -1 && bookingID == -1 {
				metrics["manual_booked"]++
			}
		}
		return metrics, nil
	})
}

// JobsCompleted derives revenue metrics from completed jobs. The sold
// threshold table is a hard precondition: revenue conversion counts are
// meaningless without it. Estimated revenue is the completed-job income
// with the GST component removed; rounding is left to the caller.
func JobsCompleted(thresholds domain.ThresholdTable) (Spec, error) {
	if len(thresholds) == 0 {
		return Spec{}, ErrMissingThresholds
	}

	const (
		jobStatus = iota
		jobTypeID
		jobNoCharge
		jobLeadCallID
		jobBookingID
		jobTotal
	)
	fields := []extract.Field{
		extract.F(extract.KindString, "jobStatus"),
		extract.F(extract.KindInt, "jobTypeId"),
		extract.F(extract.KindBool, "noCharge"),
		extract.F(extract.KindInt, "leadCallId"),
		extract.F(extract.KindInt, "bookingId"),
		extract.F(extract.KindFloat, "total"),
	}

	return newSpec(domain.SourceJobsCompleted, fields, func(rows []extract.Row) (domain.Metrics, error) {
		metrics := domain.Metrics{
			"completed_income_jobs": 0,
			"estimated_revenue":     0,
			"opportunities_booked":  0,
			"booked_converted":      0,
		}

		income := 0.0
		for _, row := range rows {
			status := asString(row[jobStatus])
			total, _ := asNumber(row[jobTotal])

			typeID, _ := asNumber(row[jobTypeID])
			threshold, ok := thresholds[int64(typeID)]
			if !ok {
				return nil, fmt.Errorf("no sold threshold for job type %d", int64(typeID))
			}

			if status == "Completed" && total > 0 {
				metrics["completed_income_jobs"]++
				income += total
			}
			if status == "Completed" && (!asBool(row[jobNoCharge]) || total >= threshold) {
				metrics["opportunities_booked"]++
			}
			if status == "Completed" && total >= threshold {
				metrics["booked_converted"]++
			}
		}
		metrics["estimated_revenue"] = income / gstRate

		return metrics, nil
	})
}
