package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and connectivity status",
	Long: `Checks the configured provider, database and Redis connectivity
and prints a short report.

Example:
  go run ./cmd/tradetips status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	fmt.Println("TradeTips status")
	fmt.Printf("  Environment:       %s\n", a.cfg.Env)
	fmt.Printf("  Provider:          %s\n", a.provider.Name())
	fmt.Printf("  Refresh interval:  %s\n", a.cfg.RefreshInterval)
	fmt.Printf("  Snapshot retention: %s\n", a.cfg.SnapshotRetention)
	fmt.Println()

	// Database
	health, err := a.db.HealthCheck(ctx)
	if err != nil {
		fmt.Printf("  Database:  unreachable (%s)\n", health.Error)
	} else {
		fmt.Printf("  Database:  ok (%s, %d/%d conns)\n",
			health.ResponseTime, health.TotalConns, health.MaxConns)
	}

	// Redis
	if !a.redis.Enabled() {
		fmt.Println("  Redis:     disabled")
	} else if err := a.redis.Redis().Ping(ctx).Err(); err != nil {
		fmt.Printf("  Redis:     unreachable (%v)\n", err)
	} else {
		fmt.Println("  Redis:     ok")
	}

	// Watchlist
	if err := a.watchlist.Init(ctx); err != nil {
		fmt.Printf("  Watchlist: unavailable (%v)\n", err)
		return nil
	}
	tickers, err := a.watchlist.Tickers(ctx)
	if err != nil {
		fmt.Printf("  Watchlist: unavailable (%v)\n", err)
		return nil
	}
	fmt.Printf("  Watchlist: %d tickers\n", len(tickers))

	return nil
}
