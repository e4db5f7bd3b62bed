package sql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryReader_ListRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	generated := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT state, anchor, generated_at, columns").
		WithArgs("NSW", "2024-03-01", "2024-03-05").
		WillReturnRows(sqlmock.NewRows([]string{"state", "anchor", "generated_at", "columns"}).
			AddRow("NSW", "2024-03-04", generated, `{"total_calls": 9}`).
			AddRow("NSW", "2024-03-05", generated, `{"total_calls": 12}`))

	reader, err := NewHistoryReader(db)
	require.NoError(t, err)

	records, err := reader.ListRange(context.Background(), "NSW", "2024-03-01", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-04", records[0].Anchor)
	assert.Equal(t, 9.0, records[0].Columns["total_calls"])
	assert.Equal(t, 12.0, records[1].Columns["total_calls"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryReader_MalformedColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT state, anchor, generated_at, columns").
		WillReturnRows(sqlmock.NewRows([]string{"state", "anchor", "generated_at", "columns"}).
			AddRow("NSW", "2024-03-04", time.Now(), `{broken`))

	reader, err := NewHistoryReader(db)
	require.NoError(t, err)

	_, err = reader.ListRange(context.Background(), "NSW", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal report columns")
}

func TestNewHistoryReader_NilDB(t *testing.T) {
	_, err := NewHistoryReader(nil)
	require.Error(t, err)
}
