package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradetips/internal/contracts"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [ticker...]",
	Short: "Compute the continuous IPS score for tickers",
	Long: `Fetches metrics for one or more tickers and prints the Investment
Profile Score with its component breakdown.

Example:
  go run ./cmd/tradetips score MSFT
  go run ./cmd/tradetips score MSFT AAPL NVDA --provider static`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

// gradeCmd represents the grade command
var gradeCmd = &cobra.Command{
	Use:   "grade [ticker...]",
	Short: "Grade tickers A-D against fixed thresholds",
	Long: `Fetches metrics for one or more tickers and prints the letter grade
with a reason per criterion. Missing metrics are reported as unknown
and do not count against the stock.

Example:
  go run ./cmd/tradetips grade MSFT
  go run ./cmd/tradetips grade MSFT AAPL`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrade,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(gradeCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	for i, arg := range args {
		if i > 0 {
			fmt.Println()
		}
		ticker := strings.ToUpper(arg)

		rec, err := a.provider.Fetch(cmd.Context(), ticker)
		if err != nil {
			return fmt.Errorf("fetch metrics for %s: %w", ticker, err)
		}

		result := a.scorer.Compute(rec)

		fmt.Printf("%s  IPS %.4f  (provider: %s)\n\n", result.Ticker, result.IPS, a.provider.Name())
		fmt.Printf("  Rule of 40          %+.4f\n", result.Components.R40)
		fmt.Printf("  Gross margin        %+.4f\n", result.Components.GPM)
		fmt.Printf("  ROIC                %+.4f\n", result.Components.ROIC)
		fmt.Printf("  EPS consistency     %+.4f\n", result.Components.EPS)
		fmt.Printf("  CCC penalty         -%.4f\n", result.Components.CCC)
		fmt.Printf("  Forward P/E penalty -%.4f\n", result.Components.PE)

		if missing := rec.MissingFields(); len(missing) > 0 {
			fmt.Printf("\n  Missing (scored as zero): %s\n", strings.Join(missing, ", "))
		}
	}

	return nil
}

func runGrade(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	for i, arg := range args {
		if i > 0 {
			fmt.Println()
		}
		ticker := strings.ToUpper(arg)

		rec, err := a.provider.Fetch(cmd.Context(), ticker)
		if err != nil {
			return fmt.Errorf("fetch metrics for %s: %w", ticker, err)
		}

		result := a.grader.Grade(rec)
		printGrade(&result)
	}

	return nil
}

func printGrade(result *contracts.GradeResult) {
	fmt.Printf("%s  %s  (%d/6 criteria", result.Ticker, result.Grade, result.Score)
	if u := result.Unknowns(); u > 0 {
		fmt.Printf(", %d unknown", u)
	}
	fmt.Println(")")
	fmt.Println()

	// Stable order for display
	order := []string{
		contracts.CriterionGrossMargin,
		contracts.CriterionROIC,
		contracts.CriterionRevenueGrowth,
		contracts.CriterionEPSConsistency,
		contracts.CriterionForwardPE,
		contracts.CriterionCCC,
	}
	for _, name := range order {
		if reason, ok := result.Reasons[name]; ok {
			fmt.Printf("  %s\n", reason.Text)
		}
	}
}
