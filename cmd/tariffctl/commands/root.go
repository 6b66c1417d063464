package commands

import (
	"github.com/flowers-delivery/app/bootstrap"
	"github.com/flowers-delivery/app/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	cfgFile     string
	tariffsFile string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tariffctl",
		Short: "Inspect and check delivery tariff files",
		Long: `tariffctl validates tariff files before they are deployed, prints the
table the service would load and quotes single addresses against it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&opts.tariffsFile, "tariffs", "t", "", "tariff file, overrides delivery.tariffs_file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newQuoteCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// loadApp builds the services from the config file and flags.
func loadApp(cmd *cobra.Command, opts *options) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if opts.tariffsFile != "" {
		cfg.Delivery.TariffsFile = opts.tariffsFile
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = bootstrap.NewLogger(cfg); err != nil {
			return nil, err
		}
	}
	return bootstrap.New(cmd.Context(), cfg, logger)
}
