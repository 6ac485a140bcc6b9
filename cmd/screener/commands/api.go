package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbattaglia/cedear-screener/internal/api"
	"github.com/mbattaglia/cedear-screener/internal/api/handlers"
	"github.com/mbattaglia/cedear-screener/pkg/metrics"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the screener API server",
	Long: `Starts the REST API server.

Endpoints:
  GET /health                - Health check
  GET /metrics               - Prometheus metrics
  GET /api/top               - Top CEDEARs by strategy
  GET /api/cedears           - Full ranked universe
  GET /api/cedears/{symbol}  - One symbol's analysis
  GET /api/universe          - Configured universe

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 8089`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New()
	}

	svc, redisClient, err := buildScreener(cfg, log, recorder)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	screenerHandler := handlers.NewScreenerHandler(svc, log)
	router := api.NewRouter(screenerHandler, recorder, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
