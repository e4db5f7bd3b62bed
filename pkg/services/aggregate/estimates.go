package aggregate

import (
	"math"

	"github.com/fieldops/pulse/pkg/extract"
	"github.com/fieldops/pulse/pkg/models/domain"
)

// SoldEstimates sums estimate subtotals into the sales figure.
func SoldEstimates() (Spec, error) {
	const estimateSubtotal = 0
	fields := []extract.Field{
		extract.F(extract.KindFloat, "subtotal"),
	}

	return newSpec(domain.SourceSoldEstimates, fields, func(rows []extract.Row) (domain.Metrics, error) {
		sales := 0.0
		for _, row := range rows {
			subtotal, _ := asNumber(row[estimateSubtotal])
			if subtotal == -1 {
				continue
			}
			sales += subtotal
		}
		return domain.Metrics{"sales": round2(sales)}, nil
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
