package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tailor4job/internal/config"
	"github.com/ziadkadry99/tailor4job/internal/document"
	"github.com/ziadkadry99/tailor4job/internal/llm"
	"github.com/ziadkadry99/tailor4job/internal/observability"
	"github.com/ziadkadry99/tailor4job/internal/progress"
	"github.com/ziadkadry99/tailor4job/internal/render"
	"github.com/ziadkadry99/tailor4job/internal/runner"
)

// rootOptions holds the flag values shared by the root command and its
// subcommands.
type rootOptions struct {
	cfgFile string
	envFile string
	verbose bool

	model        string
	provider     string
	analysisMode string

	output          string
	tokenUsage      bool
	continueOnError bool
}

// newRootCmd builds a fresh command tree. Tests call it to get isolated flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tailor4job [flags] [files...]",
		Short: "Tailor a resume and cover letter to a job description with LLMs",
		Long: `Tailor4Job reads your resume, cover letter and a job description, sends
them to one or more language models and reports how well the application
fits the job: strengths, weaknesses, ATS pass chance and keywords to add.

Results are printed to the terminal or written to a .docx or .pdf file.`,
		Version:      Version,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := document.ExpandPaths(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}
	rootCmd.SetVersionTemplate("Tailor4Job Version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", config.DefaultPath, "config file path")
	pf.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file holding API keys")
	pf.BoolVar(&opts.verbose, "verbose", false, "verbose diagnostic logging")
	pf.StringVarP(&opts.model, "model", "m", "", "model(s) to use, comma-separated for multiple models")
	pf.StringVarP(&opts.provider, "provider", "p", "", "provider(s) to use, comma-separated, one per model")
	pf.StringVarP(&opts.analysisMode, "analysis_mode", "a", "", "analysis mode: basic or detailed")

	f := rootCmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (.docx or .pdf); base name when several models are used")
	f.BoolVarP(&opts.tokenUsage, "token-usage", "t", false, "show token usage information")
	f.BoolVar(&opts.continueOnError, "continue-on-error", false, "keep going when a model/provider pair fails")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(opts),
		newCostCmd(opts),
	)
	return rootCmd
}

// Execute runs the command tree with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func runAnalyze(cmd *cobra.Command, opts *rootOptions, args []string) error {
	in, err := resolveInputs(opts, args)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(in.cfg.Log, cmd.ErrOrStderr(), opts.verbose)
	if err != nil {
		return err
	}
	defer observability.Sync(logger)

	creds, err := config.LoadCredentials(opts.envFile)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	factory := llm.NewFactory(creds, llm.Options{
		BaseURLs:          in.cfg.BaseURLs(),
		Logger:            logger,
		RequestsPerMinute: in.cfg.RateLimitRPM,
	})

	renderer, err := render.New(render.Options{
		PDFEngine:  in.cfg.Render.PDFEngine,
		Markdown:   in.cfg.Render.Markdown,
		ChromePath: in.cfg.Render.ChromePath,
	}, logger)
	if err != nil {
		return err
	}

	r := runner.New(runner.Config{
		Providers: factory,
		Renderer:  renderer,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Progress:  progress.NewReporter(cmd.ErrOrStderr()),
		Logger:    logger,
	})

	_, err = r.Run(cmd.Context(), runner.Request{
		Files:           in.files,
		Pairs:           in.pairs,
		Mode:            in.mode,
		Output:          firstNonEmpty(opts.output, in.cfg.Output),
		TokenUsage:      opts.tokenUsage,
		ContinueOnError: opts.continueOnError,
	})
	return err
}
