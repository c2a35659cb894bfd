package jobs

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/presenter"
	"github.com/wonny/screener/internal/screenconfig"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/logger"
)

// Runner executes one screening call through the failure boundary
type Runner interface {
	Run(ctx context.Context, queryText string, req contracts.ScreeningRequest) *screening.Response
}

// ScreenJob runs a configured screen on its cron schedule
type ScreenJob struct {
	name     string
	schedule string
	query    string
	request  contracts.ScreeningRequest
	runner   Runner
	out      io.Writer
	outMu    *sync.Mutex
	logger   *logger.Logger
}

// NewScreenJobs builds one job per configured screen.
// When out is non-nil each run's tables are written to it.
func NewScreenJobs(f *screenconfig.File, runner Runner, out io.Writer, log *logger.Logger) ([]*ScreenJob, error) {
	outMu := &sync.Mutex{}
	jobs := make([]*ScreenJob, 0, len(f.Screens))

	for _, s := range f.Screens {
		req, err := s.Request.ToRequest()
		if err != nil {
			return nil, fmt.Errorf("screen %s: %w", s.Name, err)
		}

		jobs = append(jobs, &ScreenJob{
			name:     s.Name,
			schedule: s.Schedule,
			query:    s.Query,
			request:  req,
			runner:   runner,
			out:      out,
			outMu:    outMu,
			logger:   log.WithField("job", s.Name),
		})
	}

	return jobs, nil
}

// Name returns the job name
func (j *ScreenJob) Name() string {
	return j.name
}

// Schedule returns the cron schedule
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run executes the screen. A fallback answer counts as a failed run.
func (j *ScreenJob) Run(ctx context.Context) error {
	resp := j.runner.Run(ctx, j.query, j.request)
	if resp.UsedFallback() {
		return fmt.Errorf("screen %s fell back: %w", j.name, resp.Err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":  resp.RunID.String(),
		"results": len(resp.Results),
		"rows":    resp.RowCount(),
	}).Info("Scheduled screen completed")

	if j.out == nil {
		return nil
	}

	j.outMu.Lock()
	defer j.outMu.Unlock()
	for _, rs := range resp.Results {
		if err := presenter.ForResultSet(rs).Render(j.out); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}
