package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokenfold/tokenfold/internal/compress"
	"github.com/tokenfold/tokenfold/internal/config"
)

type compressOptions struct {
	verbose bool
	jsonOut bool
	model   string
}

// NewCompressCmd creates the compress command.
func NewCompressCmd() *cobra.Command {
	opts := &compressOptions{}

	cmd := &cobra.Command{
		Use:   "compress [text]",
		Short: "Compress a message and show the token savings",
		Long: `Compresses a message through the substitution stages and reports
token counts before and after.

Every stage is validated against the tokenizer: a rewrite that does not
actually reduce tokens is rolled back, so the output never costs more
than the input. Reads stdin when no text argument is given.`,
		Example: `  tokenfold compress "안녕하세요, 오늘 날씨가 어때요????"
  tokenfold compress --verbose "2024년 1월에 1500000원을 냈어요"
  echo "진짜 대박 ㅋㅋㅋㅋㅋ" | tokenfold compress --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textFromArgsOrStdin(args)
			if err != nil {
				return err
			}
			return runCompress(text, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show per-stage breakdown")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output JSON")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model whose tokenizer to use")

	return cmd
}

func runCompress(text string, opts *compressOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	model := opts.model
	if model == "" {
		model = cfg.Model
	}

	counter, err := newCounter(model)
	if err != nil {
		return err
	}

	outcome := compress.NewPipeline(counter).Compress(text)

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	fmt.Println(outcome.CompressedText)
	fmt.Println()
	printInfo("Tokens", fmt.Sprintf("%d → %d", outcome.OriginalTokens, outcome.FinalTokens))
	if outcome.TokensSaved > 0 {
		printSuccess("Saved %d tokens (%.1f%%)", outcome.TokensSaved, outcome.SavingsPercent)
	} else {
		printInfo("Saved", "nothing to compress")
	}

	if opts.verbose {
		fmt.Println()
		for _, stage := range outcome.Stages {
			line := fmt.Sprintf("%-12s", stage.Name)
			if stage.Replacements == 0 {
				fmt.Printf("  %s %s\n", dim(line), dim("no change"))
				continue
			}
			fmt.Printf("  %s %d replacements, -%d tokens\n", info(line), stage.Replacements, stage.TokensSaved)
		}
	}
	return nil
}

func textFromArgsOrStdin(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(raw), "\n"), nil
}
