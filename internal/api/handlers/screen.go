package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/presenter"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/logger"
)

// Runner runs one screening call; *screening.Service satisfies it
type Runner interface {
	Run(ctx context.Context, queryText string, req contracts.ScreeningRequest) *screening.Response
}

// ScreenHandler handles screening API endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreenHandler struct {
	runner Runner
	logger *logger.Logger
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(runner Runner, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		runner: runner,
		logger: log,
	}
}

// ScreenRequest is the POST /api/screen body
type ScreenRequest struct {
	Query   string                     `json:"query"`
	Request contracts.ScreeningRequest `json:"request"`
}

// ScreenResult is one presented result set
type ScreenResult struct {
	Tag   string           `json:"tag"`
	Title string           `json:"title"`
	Rows  []contracts.Row  `json:"rows"`
	Table *presenter.Table `json:"table"`
}

// ScreenResponse is the POST /api/screen reply
type ScreenResponse struct {
	RunID    uuid.UUID      `json:"run_id"`
	Mode     contracts.Mode `json:"mode"`
	Outcome  string         `json:"outcome"`
	Results  []ScreenResult `json:"results"`
	Fallback string         `json:"fallback,omitempty"`
}

// Screen runs a structured screening request.
// Screening failures are answered by the fallback text with 200; only a malformed body is a 400.
// POST /api/screen
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var req ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp := h.runner.Run(r.Context(), req.Query, req.Request)

	out := ScreenResponse{
		RunID:    resp.RunID,
		Mode:     resp.Mode,
		Outcome:  resp.Outcome,
		Results:  make([]ScreenResult, 0, len(resp.Results)),
		Fallback: resp.Fallback,
	}
	for _, rs := range resp.Results {
		table := presenter.ForResultSet(rs)
		out.Results = append(out.Results, ScreenResult{
			Tag:   resultTag(rs),
			Title: table.Title,
			Rows:  rs.Rows,
			Table: table,
		})
	}

	respondJSON(w, http.StatusOK, out)
}

// resultTag names a result set: the screener name, or the mode for filter screens
func resultTag(rs contracts.ResultSet) string {
	if rs.Screener != "" {
		return rs.Screener
	}
	return string(rs.Mode)
}
