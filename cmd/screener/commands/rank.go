package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the universe under one strategy and print the result",
	Long: `Runs one screening pass from the command line.

Strategies:
  momentum   - technical analysis (daily change, volume, RSI, SMA, trend)
  value      - fundamentals (P/E, P/B, dividends, ROE, debt)
  defensive  - low volatility (beta, volatility, dividends, sector, debt)
  global     - symbols ranked highly across several strategies

Example:
  go run ./cmd/screener rank --strategy momentum --n 6
  go run ./cmd/screener rank --strategy global --breakdown`,
	RunE: runRank,
}

var (
	rankStrategy  string
	rankN         int
	rankBreakdown bool
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankStrategy, "strategy", "momentum", "strategy (momentum|value|defensive|global)")
	rankCmd.Flags().IntVar(&rankN, "n", 6, "number of entries to show")
	rankCmd.Flags().BoolVar(&rankBreakdown, "breakdown", false, "show the per-criterion breakdown")
}

func runRank(cmd *cobra.Command, args []string) error {
	strategy := contracts.Strategy(rankStrategy)
	if !strategy.Valid() && strategy != contracts.StrategyGlobal {
		return fmt.Errorf("unknown strategy: %q", rankStrategy)
	}
	if rankN < 1 {
		return fmt.Errorf("n must be >= 1")
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	svc, redisClient, err := buildScreener(cfg, log, nil)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	top, err := svc.TopN(ctx, strategy, rankN)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	fmt.Printf("Top %d CEDEARs (%s) - %s\n\n", len(top), strategy, time.Now().Format("2006-01-02"))
	for i, entry := range top {
		fmt.Printf("%2d. %-6s %-32s score %2d/10  ratio %d:1  USD %.2f\n",
			i+1, entry.Symbol, entry.Company, entry.Score, entry.Ratio, entry.Price)

		if entry.Local != nil && entry.Local.PriceARS != nil {
			fmt.Printf("    local ARS %.2f", *entry.Local.PriceARS)
			if entry.Local.PriceUSD != nil {
				fmt.Printf("  local USD %.2f", *entry.Local.PriceUSD)
			}
			fmt.Println()
		}

		if rankBreakdown {
			for _, outcome := range entry.Breakdown {
				fmt.Printf("    %-22s %+d  %s\n", outcome.Criterion, outcome.Points, outcome.Reason)
			}
		}
	}

	return nil
}
