package client

import (
	"context"

	"github.com/fieldops/pulse/pkg/models/domain"
)

// RecordsClient fetches raw record collections from the upstream
// field-service API for one tenant.
type RecordsClient interface {
	FetchRecords(ctx context.Context, source domain.Source, window domain.TimeWindow) ([]domain.RawRecord, error)
	FetchJobTypes(ctx context.Context) ([]domain.JobType, error)
}
