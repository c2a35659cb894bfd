package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/screener/internal/api/handlers"
	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/compiler"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/currency"
	"github.com/wonny/screener/internal/external/gemini"
	"github.com/wonny/screener/internal/external/yahoo"
	"github.com/wonny/screener/internal/screening"
	"github.com/wonny/screener/pkg/config"
	"github.com/wonny/screener/pkg/database"
	"github.com/wonny/screener/pkg/httputil"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
	"github.com/wonny/screener/pkg/redis"
)

const cachePrefix = "screener"

// app holds the wired screening stack shared by the commands
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	rates   *currency.RateTable
	catalog *catalog.Catalog
	metrics *metrics.Registry
	service *screening.Service
	repo    *screening.Repository

	db    *database.DB
	redis *redis.Client
}

// loadConfig reads config and builds the logger
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}

// loadRates resolves the reference rate table: redis → ECB → embedded
func loadRates(ctx context.Context, cfg *config.Config, log *logger.Logger) (*currency.RateTable, *redis.Client, error) {
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, reference rates will not be cached")
		rdb = redis.NewFromRedis(nil)
	}

	fetchClient := httputil.NewWithTimeout(cfg, log, cfg.FX.FetchTimeout).WithRetry(2, 500*time.Millisecond)
	loader := currency.NewLoader(
		redis.NewCache(rdb, cachePrefix),
		currency.NewECBSource(fetchClient, cfg.FX.SourceURL, log),
		cfg.FX.CacheTTL,
		log,
	)

	table, err := loader.Load(ctx)
	if err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return table, rdb, nil
}

// newApp wires config → rates → compiler → backend → dispatcher → service.
// Run persistence and the fallback model are attached only when configured.
func newApp(ctx context.Context, withHistory bool) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  log,
		catalog: catalog.Default(),
		metrics: metrics.New(),
	}

	// 1. Reference rates (loaded once, immutable)
	a.rates, a.redis, err = loadRates(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("load reference rates: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"date":       a.rates.Date(),
		"source":     a.rates.Source(),
		"currencies": len(a.rates.Currencies()),
	}).Info("Reference rates ready")

	// 2. Compiler
	comp := compiler.New(a.rates, compiler.WithBaseCurrency(cfg.FX.BaseCurrency))

	// 3. Screening backend (no retries: a failed submission is terminal)
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Screener.Timeout).DisableRetry()
	if cfg.Screener.BreakerEnabled {
		httpClient = httpClient.WithBreaker("yahoo")
	}
	backend := yahoo.NewClient(httpClient, cfg.Screener.BaseURL, cfg.Screener.Crumb, log)

	// 4. Dispatcher
	dispatcher := screening.NewDispatcher(comp, a.catalog, backend, screening.DispatcherConfig{
		Timeout:        cfg.Screener.Timeout,
		MaxConcurrency: cfg.Screener.MaxConcurrency,
	}, a.metrics, log)

	// 5. Fallback responder (optional)
	var fallback contracts.FallbackResponder
	if cfg.Gemini.Enabled() {
		responder, err := gemini.NewResponder(ctx, cfg.Gemini, log)
		if err != nil {
			log.WithError(err).Warn("Fallback responder unavailable")
		} else {
			fallback = responder
		}
	} else {
		log.Debug("GEMINI_API_KEY not set, fallback answers are static")
	}

	// 6. Run history (optional)
	var runs screening.RunStore
	if withHistory && cfg.Database.Enabled() {
		db, err := database.New(ctx, cfg)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			a.close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		a.db = db
		a.repo = screening.NewRepository(db.Pool)
		runs = a.repo

		log.Info("Run history enabled")
	}

	// 7. Service boundary
	a.service = screening.NewService(dispatcher, fallback, runs, a.metrics, log)

	return a, nil
}

// runLister returns the run repository, or nil when history is disabled
func (a *app) runLister() handlers.RunLister {
	if a.repo == nil {
		return nil
	}
	return a.repo
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
