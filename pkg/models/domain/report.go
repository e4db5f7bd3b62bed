package domain

import "time"

// Report is the flat metrics mapping returned to the caller. Values are
// float64 for aggregated and derived metrics, string for the time anchor
// and other contextual columns.
type Report map[string]any

// Metrics is the output of a single domain aggregation pass: counter and
// sum values keyed by metric name.
type Metrics map[string]float64

// TimeWindow bounds one report run in the report timezone.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// JobType carries the sold threshold consulted by the jobs-completed
// aggregation.
type JobType struct {
	ID            int64
	SoldThreshold float64
}

// ThresholdTable maps a job type id to its sold threshold.
type ThresholdTable map[int64]float64

// BuildThresholdTable indexes job types by id.
func BuildThresholdTable(jobTypes []JobType) ThresholdTable {
	table := make(ThresholdTable, len(jobTypes))
	for _, jt := range jobTypes {
		table[jt.ID] = jt.SoldThreshold
	}
	return table
}
