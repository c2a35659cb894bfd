package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/compiler"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// Titles of the single result set returned by the filter modes
const (
	EquityTitle = "Equity Screener"
	FundTitle   = "Fund Screener"
)

// DispatcherConfig holds dispatch limits
type DispatcherConfig struct {
	Timeout        time.Duration // per backend submission; 0 means no deadline
	MaxConcurrency int           // predefined fan-out width
}

// Dispatcher routes a screening request to the catalog or the compiler and
// submits the resulting queries to the backend. It holds no per-call state.
// ⭐ SSOT: 모드별 분기 + 백엔드 제출은 여기서만
type Dispatcher struct {
	compiler *compiler.Compiler
	catalog  *catalog.Catalog
	backend  contracts.ScreeningBackend
	cfg      DispatcherConfig
	metrics  *metrics.Registry
	logger   *logger.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	comp *compiler.Compiler,
	cat *catalog.Catalog,
	backend contracts.ScreeningBackend,
	cfg DispatcherConfig,
	reg *metrics.Registry,
	log *logger.Logger,
) *Dispatcher {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	return &Dispatcher{
		compiler: comp,
		catalog:  cat,
		backend:  backend,
		cfg:      cfg,
		metrics:  reg,
		logger:   log,
	}
}

// Execute runs one screening request.
// Predefined mode yields one result set per name, in the order given;
// equity and fund modes yield a single result set.
func (d *Dispatcher) Execute(ctx context.Context, req contracts.ScreeningRequest) ([]contracts.ResultSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.WithDefaults()

	switch req.Mode {
	case contracts.ModePredefined:
		return d.executePredefined(ctx, req)
	case contracts.ModeEquity, contracts.ModeFund:
		rs, err := d.executeFilters(ctx, req)
		if err != nil {
			return nil, err
		}
		return []contracts.ResultSet{*rs}, nil
	}
	return nil, &contracts.InvalidFilterError{Reason: fmt.Sprintf("unsupported mode %q", req.Mode)}
}

func (d *Dispatcher) executePredefined(ctx context.Context, req contracts.ScreeningRequest) ([]contracts.ResultSet, error) {
	// Resolve every name before any submission
	entries := make([]catalog.Entry, len(req.PredefinedNames))
	for i, name := range req.PredefinedNames {
		entry, err := d.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	d.logger.WithFields(map[string]interface{}{
		"mode":      req.Mode,
		"screeners": req.PredefinedNames,
		"limit":     req.Limit,
	}).Info("Dispatching predefined screeners")

	results := make([]contracts.ResultSet, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.MaxConcurrency)

	for i, entry := range entries {
		g.Go(func() error {
			rows, err := d.submit(gctx, req.Mode, contracts.Submission{
				Query:         entry.Query,
				QuoteType:     entry.QuoteType,
				SortField:     entry.SortField,
				SortAscending: entry.SortAscending,
				Limit:         req.Limit,
			})
			if err != nil {
				return fmt.Errorf("screener %s: %w", entry.Name, err)
			}

			results[i] = contracts.ResultSet{
				Mode:     req.Mode,
				Screener: entry.Name,
				Title:    entry.Title,
				Rows:     rows,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Dispatcher) executeFilters(ctx context.Context, req contracts.ScreeningRequest) (*contracts.ResultSet, error) {
	root, err := d.compiler.Compile(req.Filters, req.CombinationOperator)
	if err != nil {
		return nil, err
	}

	// An empty root carries no constraint and is not sent as a filter
	var query contracts.QueryNode
	if !root.Empty() {
		query = root
	}

	d.logger.WithFields(map[string]interface{}{
		"mode":           req.Mode,
		"filters":        len(req.Filters),
		"query":          root.String(),
		"sort_field":     req.SortField,
		"sort_ascending": req.SortAscending,
		"limit":          req.Limit,
	}).Info("Dispatching compiled query")

	rows, err := d.submit(ctx, req.Mode, contracts.Submission{
		Query:         query,
		QuoteType:     req.Mode.QuoteType(),
		SortField:     req.SortField,
		SortAscending: req.SortAscending,
		Limit:         req.Limit,
	})
	if err != nil {
		return nil, err
	}

	title := EquityTitle
	if req.Mode == contracts.ModeFund {
		title = FundTitle
	}

	return &contracts.ResultSet{Mode: req.Mode, Title: title, Rows: rows}, nil
}

// submit makes one backend call under the per-call deadline
func (d *Dispatcher) submit(ctx context.Context, mode contracts.Mode, sub contracts.Submission) ([]contracts.Row, error) {
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := d.backend.Screen(ctx, sub)
	d.metrics.ObserveBackend(string(mode), time.Since(start))

	if err != nil {
		if errors.Is(err, httputil.ErrCircuitOpen) {
			d.metrics.RecordBreakerRejection()
		}
		if !errors.Is(err, contracts.ErrBackendExecution) {
			err = &contracts.BackendExecutionError{Err: err}
		}
		return nil, err
	}

	if rows == nil {
		rows = []contracts.Row{}
	}
	return rows, nil
}
