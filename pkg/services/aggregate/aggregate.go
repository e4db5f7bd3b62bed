package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/pulse/pkg/extract"
	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrMissingThresholds is returned when the jobs-completed aggregation is
// requested without a job type threshold table.
var ErrMissingThresholds = errors.New("job type threshold table is required")

// Deps carries per-run inputs that individual aggregations need beyond
// the raw records.
type Deps struct {
	Thresholds domain.ThresholdTable
}

// Spec binds one source to its field descriptors and counting rules.
// Descriptors and rules are compiled-in business logic; ForSource
// validates them (schema included) at construction time.
type Spec struct {
	Source domain.Source
	Fields []extract.Field
	Schema []extract.Column

	reduce func(rows []extract.Row) (domain.Metrics, error)
}

// ForSource returns the aggregation spec for a source. The switch is
// exhaustive over domain.Sources.
func ForSource(source domain.Source, deps Deps) (Spec, error) {
	switch source {
	case domain.SourceCalls:
		return Calls()
	case domain.SourceJobsCreated:
		return JobsCreated()
	case domain.SourceJobsCompleted:
		return JobsCompleted(deps.Thresholds)
	case domain.SourceBookings:
		return Bookings()
	case domain.SourcePayments:
		return Payments()
	case domain.SourceSoldEstimates:
		return SoldEstimates()
	default:
		return Spec{}, fmt.Errorf("unknown source %q", source)
	}
}

// Reduce extracts typed rows from the raw records and folds them into the
// source's metrics in a single pass. An empty record collection yields
// zero-valued counters, not an error.
func (s Spec) Reduce(ctx context.Context, records []domain.RawRecord, loc *time.Location) (domain.Metrics, error) {
	logger := zerolog.Ctx(ctx)

	rows := make([]extract.Row, 0, len(records))
	for _, rec := range records {
		row, err := extract.Extract(rec, s.Fields, loc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Source, err)
		}
		rows = append(rows, row)
	}

	metrics, err := s.reduce(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Source, err)
	}

	logger.Debug().
		Str("source", string(s.Source)).
		Int("records", len(records)).
		Int("metrics", len(metrics)).
		Msg("source aggregated")

	return metrics, nil
}

func newSpec(source domain.Source, fields []extract.Field, reduce func(rows []extract.Row) (domain.Metrics, error)) (Spec, error) {
	schema, err := extract.BuildSchema(fields, extract.StateColumn)
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", source, err)
	}
	return Spec{Source: source, Fields: fields, Schema: schema, reduce: reduce}, nil
}

// asNumber widens any numeric row value (including the int default -1 and
// JSON-decoded float64 values) to float64.
func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
