package report

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: store}
}

func TestReportStore_AddAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rep := domain.Report{
		"total_calls":  12.0,
		"total_income": 4350.75,
		"date":         "2024-03-05",
	}

	require.NoError(t, f.store.Add(ctx, "NSW", "2024-03-05", rep))

	record, err := f.store.Get(ctx, "NSW", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "NSW", record.State)
	assert.Equal(t, "2024-03-05", record.Anchor)
	assert.Equal(t, 12.0, record.Columns["total_calls"])
	assert.Equal(t, 4350.75, record.Columns["total_income"])
}

func TestReportStore_AddReplacesSameAnchor(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, "QLD", "2024-03-05", domain.Report{"total_calls": 1.0}))
	require.NoError(t, f.store.Add(ctx, "QLD", "2024-03-05", domain.Report{"total_calls": 7.0}))

	record, err := f.store.Get(ctx, "QLD", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 7.0, record.Columns["total_calls"])

	var count int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM reports WHERE state = 'QLD'").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestReportStore_List(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, "WA", "2024-03-04", domain.Report{"sales": 10.0}))
	require.NoError(t, f.store.Add(ctx, "WA", "2024-03-05", domain.Report{"sales": 20.0}))
	require.NoError(t, f.store.Add(ctx, "NSW", "2024-03-05", domain.Report{"sales": 30.0}))

	records, err := f.store.List(ctx, "WA", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "WA", r.State)
	}
}

func TestReportStore_GetMissing(t *testing.T) {
	f := setupFixture(t)

	_, err := f.store.Get(context.Background(), "NSW", "1999-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no report for NSW")
}
