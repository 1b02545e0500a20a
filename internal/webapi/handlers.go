// Package webapi implements the HTTP API consumed by the dashboard frontend
// and by the CLI's serve command.
package webapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Version is reported by the health endpoint. Overridden at link time.
var Version = "dev"

// Handlers holds the HTTP handlers for the API.
type Handlers struct {
	store  RecommendationStore
	logger *slog.Logger
}

// NewHandlers creates the API handlers.
func NewHandlers(store RecommendationStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, logger: logger}
}

// RegisterRoutes registers all API routes on the mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/recommendations/{year}/{month}", h.handleMonth)
	mux.HandleFunc("GET /api/summary/{year}/{month}", h.handleSummary)
	mux.HandleFunc("GET /api/reports/{year}/{month}", h.handleReport)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Backend: h.store.Backend(r.Context()),
	})
}

func (h *Handlers) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seed := int64(-1)
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || seed < 0 {
			writeError(w, http.StatusBadRequest, "seed must be a non-negative integer")
			return
		}
	}

	resp, err := h.store.Month(r.Context(), year, month, seed)
	if err != nil {
		h.logger.Error("generating month failed", "year", year, "month", int(month), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.store.Summary(r.Context(), year, month)
	if err != nil {
		h.logger.Error("generating summary failed", "year", year, "month", int(month), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate summary")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) handleReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	html, err := h.store.Report(r.Context(), year, month)
	if err != nil {
		h.logger.Error("rendering report failed", "year", year, "month", int(month), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html) //nolint:errcheck
}

// parseYearMonth extracts and validates the {year}/{month} path segments.
func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1970 || year > 2100 {
		return 0, 0, errors.New("year must be between 1970 and 2100")
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}
	return year, time.Month(month), nil
}

// CORSMiddleware allows the dashboard dev server to call the API from
// another origin.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: status})
}
