package aggregate

import (
	"fmt"
	"strconv"

	"github.com/fieldops/pulse/pkg/extract"
	"github.com/fieldops/pulse/pkg/models/domain"
)

// Payments sums payment totals, which the upstream serializes as strings.
// A payment with no total contributes nothing; a total that is present
// but not numeric is fatal.
func Payments() (Spec, error) {
	const paymentTotal = 0
	fields := []extract.Field{
		extract.F(extract.KindString, "total"),
	}

	return newSpec(domain.SourcePayments, fields, func(rows []extract.Row) (domain.Metrics, error) {
		income := 0.0
		for _, row := range rows {
			raw := asString(row[paymentTotal])
			if raw == noDataSentinel {
				continue
			}
			total, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed payment total %q", raw)
			}
			income += total
		}
		return domain.Metrics{"total_income": income}, nil
	})
}
