package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/logger"
)

const maxRunsLimit = 200

// RunLister lists recent screening runs; *screening.Repository satisfies it
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]screening.Run, error)
}

// RunsHandler serves screening run history
// ⭐ SSOT: 실행 이력 API는 이 구조체에서만
type RunsHandler struct {
	runs   RunLister
	logger *logger.Logger
}

// NewRunsHandler creates a new runs handler; runs may be nil when persistence is disabled
func NewRunsHandler(runs RunLister, log *logger.Logger) *RunsHandler {
	return &RunsHandler{
		runs:   runs,
		logger: log,
	}
}

// ListRuns returns recent runs, newest first
// GET /api/runs?limit=N
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "Run history is disabled (DATABASE_URL not set)")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRunsLimit {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' (expected 1-200)")
			return
		}
		limit = n
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
	})
}
