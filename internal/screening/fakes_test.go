package screening

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/compiler"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/currency"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// fakeBackend records submissions and answers via respond
type fakeBackend struct {
	mu      sync.Mutex
	subs    []contracts.Submission
	respond func(ctx context.Context, sub contracts.Submission) ([]contracts.Row, error)
	delay   func(sub contracts.Submission) time.Duration

	inFlight    int32
	maxInFlight int32
}

func (f *fakeBackend) Screen(ctx context.Context, sub contracts.Submission) ([]contracts.Row, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.maxInFlight)
		if n <= peak || atomic.CompareAndSwapInt32(&f.maxInFlight, peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()

	if f.delay != nil {
		select {
		case <-time.After(f.delay(sub)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.respond != nil {
		return f.respond(ctx, sub)
	}
	return []contracts.Row{{"symbol": "TEST", "sortField": sub.SortField}}, nil
}

func (f *fakeBackend) submissions() []contracts.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contracts.Submission, len(f.subs))
	copy(out, f.subs)
	return out
}

// fakeFallback records the raw queries it was asked to answer
type fakeFallback struct {
	mu      sync.Mutex
	queries []string
	answer  string
	err     error
	panics  bool
}

func (f *fakeFallback) Respond(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.panics {
		panic("fallback exploded")
	}
	return f.answer, f.err
}

// fakeRunStore keeps runs in memory
type fakeRunStore struct {
	mu   sync.Mutex
	runs []*Run
	err  error
}

func (f *fakeRunStore) SaveRun(ctx context.Context, run *Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return f.err
}

func testRates(t *testing.T) *currency.RateTable {
	t.Helper()
	// 1 USD = 80 INR
	table, err := currency.NewRateTable("2025-01-02", "test", map[string]float64{
		"USD": 1.25,
		"INR": 100,
	})
	require.NoError(t, err)
	return table
}

func newTestDispatcher(t *testing.T, backend contracts.ScreeningBackend, cfg DispatcherConfig, reg *metrics.Registry) *Dispatcher {
	t.Helper()
	return NewDispatcher(
		compiler.New(testRates(t)),
		catalog.Default(),
		backend,
		cfg,
		reg,
		logger.Nop(),
	)
}
