package report

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/models/store"
	"github.com/fieldops/pulse/pkg/services/config"
	reportsvc "github.com/fieldops/pulse/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err error
	rep domain.Report
}

func (s *stubService) States(context.Context) ([]string, error) {
	return []string{"NSW"}, nil
}

func (s *stubService) Generate(context.Context, string, reportsvc.Request) (domain.Report, error) {
	return s.rep, s.err
}

type stubHistory struct{}

func (stubHistory) ListRange(context.Context, string, string, string) ([]store.ReportRecord, error) {
	return nil, nil
}

func generateStatus(t *testing.T, svc reportsvc.Service) func(path string) int {
	t.Helper()
	handler := NewHandler(svc, stubHistory{}, time.UTC)
	router := chi.NewRouter()
	router.Get("/states/{state}/report", handler.GenerateReport)

	return func(path string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}
}

func TestGenerateReport_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown state", fmt.Errorf("%w: TAS", config.ErrUnknownState), http.StatusNotFound},
		{"unavailable column", fmt.Errorf("%w: booking_rate", reportsvc.ErrColumnUnavailable), http.StatusBadRequest},
		{"upstream failure", fmt.Errorf("upstream boom"), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			get := generateStatus(t, &stubService{err: tc.err})
			status := get("/states/TAS/report?columns=total_calls")
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestGenerateReport_Success(t *testing.T) {
	get := generateStatus(t, &stubService{rep: domain.Report{"total_calls": 3.0}})
	require.Equal(t, http.StatusOK, get("/states/NSW/report?columns=total_calls"))
}
