package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/config"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show usage statistics and accumulated savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := openStats(config.NewPaths())
			if err != nil {
				return err
			}

			today := tracker.Today()
			fmt.Println(info("Today"))
			printInfo("Requests", fmt.Sprintf("%d", today.Requests))
			printInfo("Tokens saved", fmt.Sprintf("%d", today.TokensSaved))
			printInfo("Cost saved", fmt.Sprintf("$%.4f", today.CostSaved))
			for name, count := range today.Strategies {
				printInfo("  "+name, fmt.Sprintf("%d", count))
			}

			month := tracker.ThisMonth()
			fmt.Println()
			fmt.Println(info("This month"))
			printInfo("Requests", fmt.Sprintf("%d", month.Requests))
			printInfo("Cost saved", fmt.Sprintf("$%.4f", month.CostSaved))

			week := tracker.LastDays(7)
			printInfo("Daily average (7d)", fmt.Sprintf("$%.4f", week.AverageDaily))

			total := tracker.Total()
			fmt.Println()
			fmt.Println(info("All time"))
			printInfo("Requests", fmt.Sprintf("%d", total.Requests))
			printInfo("Input tokens", fmt.Sprintf("%d", total.TokensInput))
			printInfo("Output tokens", fmt.Sprintf("%d", total.TokensOutput))
			printInfo("Tokens saved", fmt.Sprintf("%d", total.TokensSaved))
			printInfo("Cost saved", fmt.Sprintf("$%.4f (%.1f%%)", total.CostSaved, total.SavingsPercent()))
			return nil
		},
	}
}
