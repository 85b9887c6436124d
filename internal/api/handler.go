// Package api provides the HTTP handlers for the finance analytics REST API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"finsight/internal/domain"
	"finsight/internal/middleware"
	"finsight/internal/service/query"
	"finsight/internal/service/semantic"
)

// Handler serves the query and semantic catalog endpoints.
type Handler struct {
	registry  *semantic.Registry
	query     *query.Service
	history   domain.QueryHistoryRepository
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler creates a Handler. The history repository may be nil, in which
// case the history endpoint reports 503.
func NewHandler(registry *semantic.Registry, querySvc *query.Service, history domain.QueryHistoryRepository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry:  registry,
		query:     querySvc,
		history:   history,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Routes mounts all API routes on the given router. The auth middleware is
// applied to the /v1 tree only; /health stays public.
func (h *Handler) Routes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/health", h.Health)
	r.Route("/v1", func(r chi.Router) {
		if auth != nil {
			r.Use(auth)
		}
		r.Post("/query", h.ExecuteQuery)
		r.Get("/history", h.ListHistory)
		r.Route("/semantic", func(r chi.Router) {
			r.Get("/search", h.SearchSemanticLayer)
			r.Get("/cubes", h.ListCubes)
			r.Get("/cubes/{name}", h.GetCubeDetails)
			r.Get("/measures", h.ListMeasures)
			r.Get("/dimensions", h.ListDimensions)
		})
	})
}

// Health reports process liveness and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}

// ExecuteQuery translates and runs a structured query.
func (h *Handler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	var q domain.StructuredQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	out, err := h.query.Execute(r.Context(), principal, q)
	if err != nil {
		h.logger.Error("query request failed",
			"request_id", middleware.RequestIDFromContext(r.Context()), "error", err)
		writeError(w, httpStatusFromDomainError(err), err.Error())
		return
	}

	resp := map[string]interface{}{
		"rows":        out.Rows,
		"row_count":   len(out.Rows),
		"totals":      out.Totals,
		"query_trace": out.QueryTrace,
	}
	if out.AssumedPeriod != nil {
		resp["assumed_period"] = out.AssumedPeriod
	}
	writeJSON(w, http.StatusOK, resp)
}

// SearchSemanticLayer searches items by substring with optional cube/group filters.
func (h *Handler) SearchSemanticLayer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	cube := r.URL.Query().Get("cube")
	group := r.URL.Query().Get("group")

	items := h.registry.Search(q, cube, group)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// ListCubes summarizes every cube.
func (h *Handler) ListCubes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cubes": h.registry.ListCubes(),
	})
}

// GetCubeDetails returns the full measure/dimension partition for one cube.
func (h *Handler) GetCubeDetails(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	detail := h.registry.CubeDetails(name)
	if detail == nil {
		writeError(w, http.StatusNotFound, "cube not found: "+name)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ListMeasures returns all measures, optionally filtered by cube.
func (h *Handler) ListMeasures(w http.ResponseWriter, r *http.Request) {
	items := h.registry.Measures(r.URL.Query().Get("cube"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// ListDimensions returns all dimensions, optionally filtered by cube.
func (h *Handler) ListDimensions(w http.ResponseWriter, r *http.Request) {
	items := h.registry.Dimensions(r.URL.Query().Get("cube"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

type historyEntryResponse struct {
	ID           string  `json:"id"`
	Principal    string  `json:"principal"`
	Intent       string  `json:"intent"`
	SQL          string  `json:"sql"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message,omitempty"`
	RowCount     *int64  `json:"row_count,omitempty"`
	DurationMs   int64   `json:"duration_ms"`
	CreatedAt    string  `json:"created_at"`
}

// ListHistory returns recent query executions, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "query history is not configured")
		return
	}

	filter := domain.QueryHistoryFilter{}
	if p := r.URL.Query().Get("principal"); p != "" {
		filter.Principal = &p
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = &s
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}

	entries, err := h.history.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, historyEntryResponse{
			ID:           e.ID,
			Principal:    e.Principal,
			Intent:       e.Intent,
			SQL:          e.SQL,
			Status:       e.Status,
			ErrorMessage: e.ErrorMessage,
			RowCount:     e.RowCount,
			DurationMs:   e.DurationMs,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": resp,
		"count":   len(resp),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
