package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradetips/internal/api"
	"github.com/wonny/tradetips/internal/api/handlers"
	"github.com/wonny/tradetips/internal/quotes"
	"github.com/wonny/tradetips/internal/scheduler"
	"github.com/wonny/tradetips/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server with the background refresh scheduler.

Endpoints:
  GET    /health                    - Health check
  GET    /api/score/{ticker}        - Continuous IPS score
  GET    /api/grade/{ticker}        - A-D grade with reasons
  GET    /api/scoreboard            - Scoreboard for the watchlist
  POST   /api/scoreboard/refresh    - Force a rebuild
  GET    /api/watchlist             - List watched tickers
  POST   /api/watchlist             - Add a ticker
  DELETE /api/watchlist/{ticker}    - Remove a ticker
  DELETE /api/watchlist             - Clear the watchlist
  GET    /api/history               - Latest snapshot per ticker
  GET    /api/history/{ticker}      - Score history for one ticker
  GET    /api/quotes/{ticker}       - Synthetic OHLCV series
  GET    /api/quotes/{ticker}/metrics - Last price and 52-week range
  GET    /api/opportunities         - Curated idea lists
  GET    /ws/scoreboard             - Realtime scoreboard push

Example:
  go run ./cmd/tradetips api
  go run ./cmd/tradetips api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	ctx := context.Background()

	// Prepare storage: schema plus default watchlist on first run.
	if err := a.watchlist.Init(ctx); err != nil {
		return fmt.Errorf("init watchlist: %w", err)
	}
	if err := a.snapshots.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("init snapshots: %w", err)
	}

	// Handlers and router
	scoreHandler := handlers.NewScoreHandler(a.board, a.log)
	watchHandler := handlers.NewWatchlistHandler(a.watchlist, a.log)
	quotesHandler := handlers.NewQuotesHandler(quotes.NewGenerator(), a.cache, a.log)
	historyHandler := handlers.NewHistoryHandler(a.snapshots, a.log)
	wsHandler := handlers.NewScoreboardWS(a.board, a.log)

	router := api.NewRouter(scoreHandler, watchHandler, quotesHandler, historyHandler, wsHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	// Background jobs: periodic refresh pushes to websocket subscribers,
	// daily prune keeps the snapshot table bounded.
	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewRefreshJob(a.board, wsHandler, a.cfg.RefreshInterval, a.log)); err != nil {
		return fmt.Errorf("schedule refresh job: %w", err)
	}
	if err := sched.AddJob(jobs.NewPruneJob(a.snapshots, a.cfg.SnapshotRetention, a.log)); err != nil {
		return fmt.Errorf("schedule prune job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s (provider: %s)\n", a.cfg.Port, a.provider.Name())
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
