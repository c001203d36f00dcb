package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/config"
	"github.com/tokenfold/tokenfold/internal/llm"
	"github.com/tokenfold/tokenfold/internal/optimizer"
)

type askOptions struct {
	optimizeOptions
	noCache bool
	verbose bool
}

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [text]",
		Short: "Send an optimized completion request",
		Long: `Runs the full pipeline: compresses the message, selects a strategy,
sends the optimized request, and prints the answer.

Responses are cached; asking the same question again within the TTL
window answers from cache without an API call. Requires OPENAI_API_KEY
in the environment or a .env file.`,
		Example: `  tokenfold ask "서울 맛집 추천해줘"
  tokenfold ask --strategy premium "요약해줘: ..."
  tokenfold ask --no-cache --verbose "오늘 날씨 어때?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textFromArgsOrStdin(args)
			if err != nil {
				return err
			}
			return runAsk(cmd, text, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "Strategy: auto, starter, pro, premium")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Structured output schema: chat, summary, qa, list")
	cmd.Flags().StringVar(&opts.systemPrompt, "system", "", "Custom system prompt (overrides the generated one)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Target model")
	cmd.Flags().BoolVar(&opts.noCompress, "no-compress", false, "Skip input compression")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Skip the response cache")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show strategy and cost details")

	return cmd
}

func runAsk(cmd *cobra.Command, text string, opts *askOptions) error {
	req, err := buildRequest(text, &opts.optimizeOptions)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	paths := config.NewPaths()

	store, err := openCache(cfg, paths)
	if err != nil {
		return err
	}
	if opts.noCache || !cfg.CacheEnabled() {
		store = nil
	}

	tracker, err := openStats(paths)
	if err != nil {
		return err
	}

	client, err := llm.New(config.LoadEnv(), store, tracker, llm.WithPricing(optimizer.Pricing{
		InputPerMillion:  cfg.Pricing.InputPerMillion,
		OutputPerMillion: cfg.Pricing.OutputPerMillion,
	}))
	if err != nil {
		return err
	}

	result, err := client.Complete(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Println(result.Content())

	if opts.verbose {
		fmt.Println()
		printInfo("Strategy", string(req.Strategy))
		printInfo("Input tokens", fmt.Sprintf("%d", req.InputTokens))
		if result.FromCache {
			printSuccess("Answered from cache, saved $%.6f", result.CostSavedUSD)
		} else {
			printInfo("Cost", fmt.Sprintf("$%.6f", result.CostUSD))
			if req.Compression != nil && req.Compression.TokensSaved > 0 {
				printSuccess("Compression saved %d input tokens", req.Compression.TokensSaved)
			}
		}
	}
	return nil
}
