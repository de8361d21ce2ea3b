package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	providerFlag string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradetips",
	Short: "TradeTips - investment profile scoring for stock watchlists",
	Long: `TradeTips Unified CLI

Scores stocks with the Investment Profile Score (IPS): a weighted blend
of Rule of 40, gross margin, ROIC, cash conversion cycle, EPS consistency
and forward P/E. Also grades stocks A-D against fixed thresholds.

Usage:
  go run ./cmd/tradetips [command]

Examples:
  go run ./cmd/tradetips api
  go run ./cmd/tradetips score MSFT
  go run ./cmd/tradetips grade MSFT
  go run ./cmd/tradetips watch list`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "metric provider (synthetic|static|alphavantage|fmp|yahoo)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
