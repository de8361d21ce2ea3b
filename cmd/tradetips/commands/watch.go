package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the watchlist",
	Long: `Manages the tickers the scoreboard tracks.

Subcommands:
  list    - show watched tickers
  add     - add a ticker
  remove  - remove a ticker
  clear   - remove all tickers

Example:
  go run ./cmd/tradetips watch list
  go run ./cmd/tradetips watch add NVDA
  go run ./cmd/tradetips watch remove NVDA`,
}

var (
	watchListCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show watched tickers",
		RunE:    runWatchList,
	}

	watchAddCmd = &cobra.Command{
		Use:   "add [ticker]",
		Short: "Add a ticker to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatchAdd,
	}

	watchRemoveCmd = &cobra.Command{
		Use:     "remove [ticker]",
		Aliases: []string{"rm"},
		Short:   "Remove a ticker from the watchlist",
		Args:    cobra.ExactArgs(1),
		RunE:    runWatchRemove,
	}

	watchClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Remove all tickers",
		RunE:  runWatchClear,
	}
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.AddCommand(watchListCmd)
	watchCmd.AddCommand(watchAddCmd)
	watchCmd.AddCommand(watchRemoveCmd)
	watchCmd.AddCommand(watchClearCmd)
}

func runWatchList(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.watchlist.Init(cmd.Context()); err != nil {
		return err
	}

	entries, err := a.watchlist.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("Watchlist is empty")
		return nil
	}

	fmt.Printf("Watchlist (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %-6s added %s\n", e.Ticker, e.AddedAt.Format("2006-01-02"))
	}
	return nil
}

func runWatchAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.watchlist.Init(cmd.Context()); err != nil {
		return err
	}

	ticker, err := a.watchlist.Add(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Added %s\n", ticker)
	return nil
}

func runWatchRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	removed, err := a.watchlist.Remove(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("%s was not on the watchlist\n", args[0])
		return nil
	}

	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func runWatchClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.watchlist.Clear(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("Watchlist cleared")
	return nil
}
