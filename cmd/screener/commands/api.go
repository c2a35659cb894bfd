package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/api"
	"github.com/wonny/screener/internal/api/handlers"
	"github.com/wonny/screener/pkg/logger"
	"github.com/wonny/screener/pkg/metrics"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                 - Health check
  POST /api/screen             - 스크리닝 실행 {query, request}
  GET  /api/screeners          - 사전 정의 스크리너 목록
  GET  /api/screeners/{name}   - 스크리너 조건 (wire 형식)
  GET  /api/fields/{mode}      - equity | fund 필드 목록
  GET  /api/runs?limit=N       - 실행 이력 (DATABASE_URL 필요)
  GET  /metrics                - Prometheus (METRICS_ENABLED)

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Screener API Server ===")

	ctx := context.Background()

	// 1. Wire the screening stack
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, log := a.cfg, a.logger
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Handlers
	h := api.Handlers{
		Screen:  handlers.NewScreenHandler(a.service, log),
		Catalog: handlers.NewCatalogHandler(a.catalog, log),
		Runs:    handlers.NewRunsHandler(a.runLister(), log),
	}

	// 3. Metrics: on the API router, or on a separate port when METRICS_PORT differs
	var routerMetrics *metrics.Registry
	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		if cfg.MetricsPort == "" || cfg.MetricsPort == cfg.Port {
			routerMetrics = a.metrics
		} else {
			metricsServer = startMetricsServer(cfg.MetricsPort, a.metrics, log)
		}
	}

	// 4. Server
	server := api.New(cfg, log, api.NewRouter(h, routerMetrics, log))

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Metrics server shutdown failed")
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// startMetricsServer serves /metrics on its own port
func startMetricsServer(port string, reg *metrics.Registry, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Metrics server failed")
		}
	}()

	log.WithField("port", port).Info("Metrics server started")
	return srv
}
