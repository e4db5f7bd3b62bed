package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/services/aggregate"
	"github.com/rs/zerolog"
)

// ErrColumnUnavailable is returned when a requested column was not
// produced by the run, e.g. a ratio whose inputs were never requested.
var ErrColumnUnavailable = errors.New("requested column unavailable")

// ErrNoColumns is returned for a request with an empty column set.
var ErrNoColumns = errors.New("no report columns requested")

// Fetcher is the upstream boundary: one call per selected source for the
// run's time window, plus the job type lookup consulted before the
// jobs-completed aggregation.
type Fetcher interface {
	FetchRecords(ctx context.Context, source domain.Source, window domain.TimeWindow) ([]domain.RawRecord, error)
	FetchJobTypes(ctx context.Context) ([]domain.JobType, error)
}

// Request describes one report run. A nil Date means midnight-to-now in
// the report timezone; otherwise the window covers the whole given day.
type Request struct {
	Columns []string
	Date    *time.Time
}

// Controller runs the extraction-and-aggregation pipeline for a single
// tenant: plan sources, fetch and aggregate each selected source,
// collate, enrich and project down to the requested columns.
type Controller struct {
	fetcher Fetcher
	loc     *time.Location
	now     func() time.Time
}

func NewController(fetcher Fetcher, loc *time.Location) *Controller {
	return &Controller{
		fetcher: fetcher,
		loc:     loc,
		now:     time.Now,
	}
}

func (c *Controller) Generate(ctx context.Context, req Request) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	if len(req.Columns) == 0 {
		return nil, ErrNoColumns
	}

	now := c.now()
	var window domain.TimeWindow
	anchorKey, anchorValue := "end_time_utc", EndTimestampUTC(now)
	if req.Date != nil {
		window = DayWindow(*req.Date, c.loc)
		anchorKey, anchorValue = "date", req.Date.Format("2006-01-02")
	} else {
		window = SinceMidnight(now, c.loc)
	}

	selected := aggregate.Plan(req.Columns)
	logger.Debug().
		Int("sources", len(selected)).
		Time("window_start", window.Start).
		Time("window_end", window.End).
		Msg("report planned")

	parts, err := c.runSources(ctx, selected, window)
	if err != nil {
		return nil, err
	}

	rep := Collate(parts)
	if revenue, ok := metric(rep, "estimated_revenue"); ok {
		rep["estimated_revenue"] = round2(revenue)
	}
	rep[anchorKey] = anchorValue
	rep = Enrich(rep)

	out := make(domain.Report, len(req.Columns))
	for _, col := range req.Columns {
		v, ok := rep[col]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnUnavailable, col)
		}
		out[col] = v
	}
	return out, nil
}

// runSources fetches and aggregates each selected source concurrently.
// Sources share no state and their metric keys are disjoint, so the join
// order does not matter.
func (c *Controller) runSources(
	ctx context.Context,
	selected map[domain.Source]bool,
	window domain.TimeWindow,
) ([]domain.Metrics, error) {
	type result struct {
		metrics domain.Metrics
		err     error
	}

	results := make(chan result, len(selected))
	count := 0
	for _, source := range domain.Sources {
		if !selected[source] {
			continue
		}
		count++
		go func(source domain.Source) {
			metrics, err := c.runSource(ctx, source, window)
			results <- result{metrics: metrics, err: err}
		}(source)
	}

	parts := make([]domain.Metrics, 0, count)
	var firstErr error
	for i := 0; i < count; i++ {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		parts = append(parts, r.metrics)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return parts, nil
}

func (c *Controller) runSource(ctx context.Context, source domain.Source, window domain.TimeWindow) (domain.Metrics, error) {
	var deps aggregate.Deps
	if source == domain.SourceJobsCompleted {
		jobTypes, err := c.fetcher.FetchJobTypes(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch job types: %w", err)
		}
		deps.Thresholds = domain.BuildThresholdTable(jobTypes)
	}

	spec, err := aggregate.ForSource(source, deps)
	if err != nil {
		return nil, err
	}

	records, err := c.fetcher.FetchRecords(ctx, source, window)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}

	return spec.Reduce(ctx, records, c.loc)
}
