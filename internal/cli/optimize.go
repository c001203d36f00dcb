package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/config"
	"github.com/tokenfold/tokenfold/internal/license"
	"github.com/tokenfold/tokenfold/internal/optimizer"
	"github.com/tokenfold/tokenfold/internal/strategy"
)

type optimizeOptions struct {
	strategy     string
	schema       string
	systemPrompt string
	model        string
	noCompress   bool
	jsonOut      bool
}

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd() *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [text]",
		Short: "Show the optimized request for a message without sending it",
		Long: `Builds the complete optimized request for a message and prints it:
compressed text, selected strategy, system prompt, sampling parameters,
and the estimated cost of the call.

Nothing is sent to the API; use this to inspect what 'ask' would do.`,
		Example: `  tokenfold optimize "서울 맛집 추천해줘"
  tokenfold optimize --strategy premium "긴 질문..."
  tokenfold optimize --schema list --json "재료 목록 뽑아줘"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textFromArgsOrStdin(args)
			if err != nil {
				return err
			}
			return runOptimizeCmd(text, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "Strategy: auto, starter, pro, premium")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Structured output schema: chat, summary, qa, list")
	cmd.Flags().StringVar(&opts.systemPrompt, "system", "", "Custom system prompt (overrides the generated one)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Target model")
	cmd.Flags().BoolVar(&opts.noCompress, "no-compress", false, "Skip input compression")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output JSON")

	return cmd
}

func buildRequest(text string, opts *optimizeOptions) (*optimizer.Request, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	model := opts.model
	if model == "" {
		model = cfg.Model
	}
	requested := opts.strategy
	if requested == "" {
		requested = cfg.Strategy
	}

	counter, err := newCounter(model)
	if err != nil {
		return nil, err
	}

	freePlan := !premiumPlan(cfg)
	if freePlan && strategy.Strategy(requested).Valid() && requested != string(strategy.Starter) {
		printWarning("The %s strategy needs a premium license; using starter", requested)
	}

	pricing := optimizer.Pricing{
		InputPerMillion:  cfg.Pricing.InputPerMillion,
		OutputPerMillion: cfg.Pricing.OutputPerMillion,
	}

	return optimizer.NewWithPricing(counter, pricing).Optimize(text, optimizer.Options{
		Strategy:        strategy.Strategy(requested),
		SkipCompression: opts.noCompress || !cfg.CompressEnabled(),
		Schema:          optimizer.SchemaType(opts.schema),
		SystemPrompt:    opts.systemPrompt,
		Model:           model,
		FreePlan:        freePlan,
	}), nil
}

// premiumPlan reports whether a valid premium license is configured,
// in the config file or the TOKENFOLD_LICENSE environment variable.
func premiumPlan(cfg *config.Config) bool {
	key := cfg.License
	if key == "" {
		key = config.LicenseFromEnv()
	}
	if key == "" {
		return false
	}
	v := license.Verify(key, time.Now())
	return v.Valid && v.Plan == license.PlanPremium
}

func runOptimizeCmd(text string, opts *optimizeOptions) error {
	req, err := buildRequest(text, opts)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(req)
	}

	printRequest(req)
	return nil
}

func printRequest(req *optimizer.Request) {
	fmt.Println(info("Request"))
	printInfo("Model", req.Model)
	printInfo("Strategy", fmt.Sprintf("%s (%s tier)", req.Strategy, req.Tier))
	printInfo("System prompt", req.SystemPrompt)
	printInfo("Message", req.UserMessage)
	printInfo("Max tokens", fmt.Sprintf("%d", req.MaxTokens))

	params := fmt.Sprintf("temperature=%.1f", req.Temperature)
	if req.TopP != nil {
		params += fmt.Sprintf(" top_p=%.1f", *req.TopP)
	}
	if req.FrequencyPenalty != nil {
		params += fmt.Sprintf(" frequency_penalty=%.1f", *req.FrequencyPenalty)
	}
	if req.PresencePenalty != nil {
		params += fmt.Sprintf(" presence_penalty=%.1f", *req.PresencePenalty)
	}
	printInfo("Sampling", params)

	if req.UsesAbbreviations {
		printInfo("Shorthand", "allowed in reply")
	}

	fmt.Println()
	fmt.Println(info("Estimate"))
	printInfo("Input tokens", fmt.Sprintf("%d", req.InputTokens))
	printInfo("Output tokens", fmt.Sprintf("~%d", req.EstimatedOutputTokens))
	printInfo("Cost", fmt.Sprintf("$%.6f", req.EstimatedCost))

	if req.Compression != nil && req.Compression.TokensSaved > 0 {
		fmt.Println()
		printSuccess("Compression saved %d input tokens (%.1f%%)",
			req.Compression.TokensSaved, req.Compression.SavingsPercent)
	}
}
