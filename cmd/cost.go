package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tailor4job/internal/document"
	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/runner"
)

func newCostCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cost [files...]",
		Short: "Estimate token counts and API cost without calling any provider",
		Long: `Performs a dry run: reads the input files, builds the prompt exactly as an
analysis would, and estimates prompt tokens and input cost for every
model/provider pair. No API calls are made and no API keys are needed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := document.ExpandPaths(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := resolveInputs(opts, args)
			if err != nil {
				return err
			}

			for _, pair := range in.pairs {
				if !llm.IsSupported(pair.Provider) {
					return fmt.Errorf("%w %q: please choose one of %s", llm.ErrUnsupportedProvider, pair.Provider, strings.Join(llm.Supported(), ", "))
				}
			}

			estimates, err := runner.EstimateCosts(in.files, in.pairs, in.mode)
			if err != nil {
				return fmt.Errorf("cost estimation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Cost Estimate")
			fmt.Fprintln(out, "=============")
			fmt.Fprintf(out, "  Input files:      %d\n", len(in.files))
			fmt.Fprintf(out, "  Analysis mode:    %s\n", in.mode)
			fmt.Fprintln(out)

			var total float64
			for _, e := range estimates {
				cost := "unknown pricing"
				if e.Priced {
					cost = fmt.Sprintf("$%.6f", e.InputCostUSD)
					total += e.InputCostUSD
				}
				fmt.Fprintf(out, "  %-45s ~%d prompt tokens  %s\n", e.Pair, e.PromptTokens, cost)
			}
			fmt.Fprintf(out, "  %-45s --------\n", "")
			fmt.Fprintf(out, "  %-45s $%.6f\n", "Total (input only)", total)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  Completion tokens are not included; they depend on the model's answer.")
			return nil
		},
	}
}
