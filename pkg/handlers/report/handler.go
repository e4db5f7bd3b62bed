package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fieldops/pulse/pkg/models/api"
	"github.com/fieldops/pulse/pkg/services/config"
	reportsvc "github.com/fieldops/pulse/pkg/services/report"
	sqlstore "github.com/fieldops/pulse/pkg/store/sql"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	service reportsvc.Service
	history sqlstore.HistoryReader
	loc     *time.Location
}

func NewHandler(service reportsvc.Service, history sqlstore.HistoryReader, loc *time.Location) *Handler {
	return &Handler{
		service: service,
		history: history,
		loc:     loc,
	}
}

func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	states, err := h.service.States(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list states")
		writeError(w, http.StatusInternalServerError, "failed to list states")
		return
	}
	writeJSON(w, http.StatusOK, states)
}

// GenerateReport runs a report for one state. Query parameters:
// columns (comma separated, required) and date (YYYY-MM-DD, optional;
// omitted means midnight-to-now).
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	state := chi.URLParam(r, "state")

	columnsParam := r.URL.Query().Get("columns")
	if columnsParam == "" {
		writeError(w, http.StatusBadRequest, "columns query parameter is required")
		return
	}
	req := reportsvc.Request{Columns: strings.Split(columnsParam, ",")}

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		day, err := time.ParseInLocation("2006-01-02", dateParam, h.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		req.Date = &day
	}

	rep, err := h.service.Generate(ctx, state, req)
	switch {
	case errors.Is(err, config.ErrUnknownState):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, reportsvc.ErrColumnUnavailable), errors.Is(err, reportsvc.ErrNoColumns):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error().Err(err).Str("state", state).Msg("report generation failed")
		writeError(w, http.StatusBadGateway, "report generation failed")
		return
	}

	writeJSON(w, http.StatusOK, api.Report{State: state, Columns: rep})
}

// ListReports serves persisted report history. Query parameters: from
// and to (anchor bounds, required).
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	state := chi.URLParam(r, "state")

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	records, err := h.history.ListRange(ctx, state, from, to)
	if err != nil {
		logger.Error().Err(err).Str("state", state).Msg("report history query failed")
		writeError(w, http.StatusInternalServerError, "report history query failed")
		return
	}

	entries := make([]api.HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, api.HistoryEntry{
			Anchor:      record.Anchor,
			GeneratedAt: record.GeneratedAt,
			Columns:     record.Columns,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Message: message})
}
