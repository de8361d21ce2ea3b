package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the scoreboard once and print it",
	Long: `Fetches metrics for every watched ticker, recomputes scores and
grades, persists snapshots and prints the resulting scoreboard.

Example:
  go run ./cmd/tradetips refresh
  go run ./cmd/tradetips refresh --provider synthetic`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.watchlist.Init(ctx); err != nil {
		return err
	}
	if err := a.snapshots.EnsureSchema(ctx); err != nil {
		return err
	}

	board, err := a.board.Refresh(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Scoreboard (%s, provider: %s)\n\n", board.GeneratedAt.Format("2006-01-02 15:04:05"), board.Provider)
	for _, entry := range board.Entries {
		if entry.Err != "" {
			fmt.Printf("  %-6s fetch failed: %s\n", entry.Ticker, entry.Err)
			continue
		}
		fmt.Printf("  %-6s IPS %8.4f  %s  (%d/6)\n",
			entry.Ticker, entry.Score.IPS, entry.Grade.Grade, entry.Grade.Score)
	}

	return nil
}
