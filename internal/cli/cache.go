package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/cache"
	"github.com/tokenfold/tokenfold/internal/config"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the response cache",
	}

	cmd.AddCommand(newCacheInfoCmd())
	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

func openConfiguredCache() (*cache.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return openCache(cfg, config.NewPaths())
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache contents and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredCache()
			if err != nil {
				return err
			}

			ci := store.Info()
			fmt.Println(info("Storage"))
			printInfo("Entries", fmt.Sprintf("%d/%d", ci.TotalEntries, ci.MaxSize))
			printInfo("Active", fmt.Sprintf("%d", ci.ActiveEntries))
			printInfo("Expired", fmt.Sprintf("%d", ci.ExpiredEntries))

			fmt.Println()
			fmt.Println(info("Configuration"))
			printInfo("TTL", ci.TTL.String())
			printInfo("Sweep interval", fmt.Sprintf("every %d operations", ci.SweepInterval))

			if !ci.OldestEntry.IsZero() {
				fmt.Println()
				fmt.Println(info("Timeline"))
				printInfo("Oldest entry", ci.OldestEntry.Format("2006-01-02 15:04"))
				printInfo("Newest entry", ci.NewestEntry.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache hit statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredCache()
			if err != nil {
				return err
			}

			st := store.Statistics()
			printInfo("Hits", fmt.Sprintf("%d", st.Hits))
			printInfo("Misses", fmt.Sprintf("%d", st.Misses))
			printInfo("Hit rate", fmt.Sprintf("%.1f%%", st.HitRate()))
			printInfo("Saves", fmt.Sprintf("%d", st.Saves))
			printInfo("Evictions", fmt.Sprintf("%d", st.Evictions))
			printInfo("Cost saved", fmt.Sprintf("$%.2f", st.TotalCostSaved))
			return nil
		},
	}
}

type cacheClearOptions struct {
	pattern   string
	expired   bool
	olderThan time.Duration
}

func newCacheClearCmd() *cobra.Command {
	opts := &cacheClearOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached responses",
		Long: `Removes cached responses. With no flags, clears everything.

--pattern matches against the cached question text, so related entries
can be dropped together, e.g. after facts they depend on have changed.`,
		Example: `  tokenfold cache clear
  tokenfold cache clear --expired
  tokenfold cache clear --pattern "날씨|weather"
  tokenfold cache clear --older-than 168h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredCache()
			if err != nil {
				return err
			}

			switch {
			case opts.pattern != "":
				n, err := store.ClearByPattern(opts.pattern)
				if err != nil {
					return err
				}
				reportCleared(n, fmt.Sprintf("matching %q", opts.pattern))
			case opts.expired:
				reportCleared(store.ClearExpired(), "expired")
			case opts.olderThan > 0:
				reportCleared(store.ClearOlderThan(opts.olderThan), fmt.Sprintf("older than %s", opts.olderThan))
			default:
				reportCleared(store.Clear(), "")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "Remove entries whose question matches this regexp")
	cmd.Flags().BoolVar(&opts.expired, "expired", false, "Remove only expired entries")
	cmd.Flags().DurationVar(&opts.olderThan, "older-than", 0, "Remove entries cached more than this long ago")

	return cmd
}

func reportCleared(n int, what string) {
	if what != "" {
		what = " " + what
	}
	if n == 0 {
		printWarning("No%s entries found", what)
		return
	}
	printSuccess("Removed %d%s entries", n, what)
}
