package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldops/pulse/pkg/models/api"
	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/models/store"
	reportsvc "github.com/fieldops/pulse/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) States(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockService) Generate(ctx context.Context, state string, req reportsvc.Request) (domain.Report, error) {
	args := m.Called(ctx, state, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Report), args.Error(1)
}

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) ListRange(ctx context.Context, state, from, to string) ([]store.ReportRecord, error) {
	args := m.Called(ctx, state, from, to)
	return args.Get(0).([]store.ReportRecord), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	svc := new(mockService)
	history := new(mockHistory)

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Reports:  svc,
			History:  history,
			Timezone: time.UTC,
		},
	})
	testServer := httptest.NewServer(webAPI.Handler())
	defer testServer.Close()

	generated := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "ListStates",
			path: "/api/v1/states",
			setupMocks: func() {
				svc.On("States", mock.Anything).
					Return([]string{"NSW", "QLD"}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []string{"NSW", "QLD"},
			parseResponse:  unmarshalResponse[[]string](),
		},
		{
			name: "GenerateReport",
			path: "/api/v1/states/NSW/report?columns=total_calls,total_income",
			setupMocks: func() {
				svc.On("Generate", mock.Anything, "NSW", reportsvc.Request{
					Columns: []string{"total_calls", "total_income"},
				}).Return(domain.Report{"total_calls": 12.0, "total_income": 4350.75}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.Report{
				State:   "NSW",
				Columns: map[string]any{"total_calls": 12.0, "total_income": 4350.75},
			},
			parseResponse: unmarshalResponse[api.Report](),
		},
		{
			name:           "GenerateReport_MissingColumns",
			path:           "/api/v1/states/NSW/report",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Message: "columns query parameter is required"},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:           "GenerateReport_InvalidDate",
			path:           "/api/v1/states/NSW/report?columns=total_calls&date=05-03-2024",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Message: "date must be YYYY-MM-DD"},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name: "ListReports",
			path: "/api/v1/states/NSW/reports?from=2024-03-01&to=2024-03-05",
			setupMocks: func() {
				history.On("ListRange", mock.Anything, "NSW", "2024-03-01", "2024-03-05").
					Return([]store.ReportRecord{{
						State:       "NSW",
						Anchor:      "2024-03-05",
						GeneratedAt: generated,
						Columns:     map[string]any{"sales": 99.0},
					}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.HistoryEntry{{
				Anchor:      "2024-03-05",
				GeneratedAt: generated,
				Columns:     map[string]any{"sales": 99.0},
			}},
			parseResponse: unmarshalResponse[[]api.HistoryEntry](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
