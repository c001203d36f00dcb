// Package cli implements the tokenfold command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/cache"
	"github.com/tokenfold/tokenfold/internal/config"
	"github.com/tokenfold/tokenfold/internal/stats"
	"github.com/tokenfold/tokenfold/internal/token"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Output helpers.
	successIcon = color.New(color.FgGreen).Sprint("✓")
	warningIcon = color.New(color.FgYellow).Sprint("⚠")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tokenfold",
		Short: "Cut LLM API costs by compressing prompts and shaping responses",
		Long: `Tokenfold reduces what chat completions cost.

It compresses the input message with token-validated rewrites, picks a
response strategy from the input length, builds a short system prompt
with matching sampling parameters, and caches responses so repeated
questions are free.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewCompressCmd())
	rootCmd.AddCommand(NewOptimizeCmd())
	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewLicenseCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tokenfold %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print error with hint if available
		fmt.Fprintf(os.Stderr, "%s %s\n", errorIcon, err.Error())
		if he, ok := err.(interface{ HintText() string }); ok {
			if hint := he.HintText(); hint != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", dim(hint))
			}
		}
		return err
	}
	return nil
}

// printSuccess prints a success message.
func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}

// printInfo prints an info line.
func printInfo(label, value string) {
	fmt.Printf("  %s: %s\n", dim(label), value)
}

// newCounter builds a token counter for the configured model.
func newCounter(model string) (*token.Counter, error) {
	counter, err := token.NewCounter(model)
	if err != nil {
		return nil, err
	}
	if counter.UsedFallback() {
		printWarning("No tokenizer registered for %s, counting with %s", model, token.FallbackEncoding)
	}
	return counter, nil
}

// openCache opens the response cache with the configured limits.
func openCache(cfg *config.Config, paths *config.Paths) (*cache.Store, error) {
	return cache.New(paths.CacheFile,
		cache.WithTTL(cfg.CacheTTL()),
		cache.WithMaxSize(cfg.Cache.MaxSize),
		cache.WithSweepInterval(cfg.Cache.SweepInterval),
	)
}

// openStats opens the usage tracker.
func openStats(paths *config.Paths) (*stats.Tracker, error) {
	return stats.New(paths.StatsFile)
}
