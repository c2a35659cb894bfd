package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/redis"
)

// RateFetcher retrieves a fresh rate table from a remote source
type RateFetcher interface {
	Fetch(ctx context.Context) (*RateTable, error)
}

// Loader resolves the process-wide rate table at startup:
// redis cache, then remote fetch, then the embedded snapshot.
type Loader struct {
	cache   *redis.Cache
	fetcher RateFetcher
	ttl     time.Duration
	logger  *logger.Logger
}

// NewLoader creates a loader. cache and fetcher may be nil.
func NewLoader(cache *redis.Cache, fetcher RateFetcher, ttl time.Duration, log *logger.Logger) *Loader {
	return &Loader{
		cache:   cache,
		fetcher: fetcher,
		ttl:     ttl,
		logger:  log,
	}
}

// Load returns a rate table; it only fails when the embedded snapshot is unusable
func (l *Loader) Load(ctx context.Context) (*RateTable, error) {
	if table := l.fromCache(ctx); table != nil {
		return table, nil
	}

	if l.fetcher != nil {
		table, err := l.fetcher.Fetch(ctx)
		if err == nil {
			l.store(ctx, table)
			return table, nil
		}
		l.logger.WithError(err).Warn("Reference rate fetch failed, using embedded snapshot")
	}

	table, err := Embedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded reference rates: %w", err)
	}

	l.logger.WithField("date", table.Date()).Info("Using embedded reference rates")
	return table, nil
}

func (l *Loader) fromCache(ctx context.Context) *RateTable {
	if l.cache == nil {
		return nil
	}

	var snap RateSnapshot
	found, err := l.cache.Get(ctx, redis.FXLatestKey(), &snap)
	if err != nil {
		l.logger.WithError(err).Warn("Reference rate cache read failed")
		return nil
	}
	if !found {
		return nil
	}

	table, err := FromSnapshot(snap)
	if err != nil {
		l.logger.WithError(err).Warn("Cached reference rates are invalid")
		return nil
	}

	l.logger.WithField("date", table.Date()).Debug("Reference rates loaded from cache")
	return table.WithSource(SourceCache)
}

func (l *Loader) store(ctx context.Context, table *RateTable) {
	if l.cache == nil {
		return
	}

	snap := table.Snapshot()
	if err := l.cache.Set(ctx, redis.FXLatestKey(), snap, l.ttl); err != nil {
		l.logger.WithError(err).Warn("Reference rate cache write failed")
		return
	}
	if err := l.cache.Set(ctx, redis.FXDateKey(table.Date()), snap, redis.TTLDaily); err != nil {
		l.logger.WithError(err).Warn("Reference rate archive write failed")
	}
}
