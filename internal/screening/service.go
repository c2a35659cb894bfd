package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// ApologyText is returned when both screening and the fallback responder fail
const ApologyText = "Sorry, I couldn't complete that screen right now. Please try rephrasing the request or try again later."

// Executor runs a structured screening request
type Executor interface {
	Execute(ctx context.Context, req contracts.ScreeningRequest) ([]contracts.ResultSet, error)
}

// Response is the outcome of one screening call.
// Exactly one of Results and Fallback is meaningful: Err != nil means the fallback path was taken.
type Response struct {
	RunID    uuid.UUID             `json:"run_id"`
	Mode     contracts.Mode        `json:"mode"`
	Query    string                `json:"query"`
	Results  []contracts.ResultSet `json:"results,omitempty"`
	Fallback string                `json:"fallback,omitempty"`
	Outcome  string                `json:"outcome"`
	Err      error                 `json:"-"`
}

// UsedFallback reports whether screening failed and the fallback answered
func (r *Response) UsedFallback() bool {
	return r.Err != nil
}

// RowCount returns the total rows across all result sets
func (r *Response) RowCount() int {
	n := 0
	for _, rs := range r.Results {
		n += len(rs.Rows)
	}
	return n
}

// Service is the screening boundary: every error or panic raised while
// screening is contained here and answered by the fallback responder.
// ⭐ SSOT: 스크리닝 실패 → 폴백 경로는 여기서만
type Service struct {
	executor Executor
	fallback contracts.FallbackResponder
	runs     RunStore
	metrics  *metrics.Registry
	logger   *logger.Logger
}

// NewService creates a new screening service.
// fallback and runs may be nil.
func NewService(executor Executor, fallback contracts.FallbackResponder, runs RunStore, reg *metrics.Registry, log *logger.Logger) *Service {
	return &Service{
		executor: executor,
		fallback: fallback,
		runs:     runs,
		metrics:  reg,
		logger:   log,
	}
}

// Run screens req and never fails: on any error the raw queryText is handed
// to the fallback responder and the structured request is discarded.
func (s *Service) Run(ctx context.Context, queryText string, req contracts.ScreeningRequest) *Response {
	start := time.Now()
	req.Mode = req.Mode.Canonical()
	resp := &Response{
		RunID: uuid.New(),
		Mode:  req.Mode,
		Query: queryText,
	}

	log := s.logger.WithFields(map[string]interface{}{
		"run_id": resp.RunID.String(),
		"mode":   req.Mode,
	})

	results, err := s.execute(ctx, req)
	if err != nil {
		resp.Err = err
		resp.Outcome = metrics.OutcomeFallback
		log.WithError(err).Warn("Screening failed, using fallback responder")
		resp.Fallback = s.respond(ctx, queryText, log)
	} else {
		resp.Results = results
		resp.Outcome = metrics.OutcomeOK
		if resp.RowCount() == 0 {
			resp.Outcome = metrics.OutcomeEmpty
		}
	}

	duration := time.Since(start)
	s.metrics.RecordRun(modeLabel(req.Mode), resp.Outcome)

	log.WithFields(map[string]interface{}{
		"outcome":  resp.Outcome,
		"rows":     resp.RowCount(),
		"duration": duration,
	}).Info("Screening run finished")

	s.record(ctx, resp, req, duration, log)
	return resp
}

func (s *Service) execute(ctx context.Context, req contracts.ScreeningRequest) (results []contracts.ResultSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("screening panicked: %v", r)
		}
	}()
	return s.executor.Execute(ctx, req)
}

func (s *Service) respond(ctx context.Context, queryText string, log *logger.Logger) (answer string) {
	if s.fallback == nil {
		return ApologyText
	}

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", fmt.Sprint(r)).Error("Fallback responder panicked")
			answer = ApologyText
		}
	}()

	answer, err := s.fallback.Respond(ctx, queryText)
	if err != nil {
		log.WithError(err).Error("Fallback responder failed")
		return ApologyText
	}
	if answer == "" {
		return ApologyText
	}
	return answer
}

// record persists the run; storage failures are logged only
func (s *Service) record(ctx context.Context, resp *Response, req contracts.ScreeningRequest, duration time.Duration, log *logger.Logger) {
	if s.runs == nil {
		return
	}

	run := &Run{
		ID:        resp.RunID,
		Mode:      contracts.Mode(modeLabel(req.Mode)),
		QueryText: resp.Query,
		Request:   req,
		Outcome:   resp.Outcome,
		RowCount:  resp.RowCount(),
		Duration:  duration,
		CreatedAt: time.Now(),
	}
	if resp.Err != nil {
		run.ErrorMessage = resp.Err.Error()
	}

	if err := s.runs.SaveRun(ctx, run); err != nil {
		log.WithError(err).Warn("Failed to save screening run")
	}
}

func modeLabel(mode contracts.Mode) string {
	if mode == "" {
		return "unknown"
	}
	return string(mode)
}
