package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/tailor4job/internal/config"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the tailor4job config file with an interactive wizard",
		Long: `Runs an interactive wizard that picks a default provider, model, analysis
mode and output file, and saves them to the config file (~/.tailor4job_config.toml
unless --config is given). Existing values are offered as defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			_, err = config.RunWizard(opts.cfgFile, base, cmd.OutOrStdout())
			return err
		},
	}
}
