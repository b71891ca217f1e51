// cmd/dandelion/root.go
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/dandelion/internal/app"
	"github.com/rovshanmuradov/dandelion/internal/config"
	"github.com/rovshanmuradov/dandelion/internal/logger"
)

// cli holds what every subcommand shares once the root pre-run has loaded it.
type cli struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "dandelion",
		Short:         "Distribute an SPL token to many generated addresses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (any format viper reads)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "debug logging")

	root.AddCommand(
		newRunCmd(c),
		newEstimateCmd(c),
		newTokensCmd(c),
		newWalletCmd(c),
	)
	return root
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.Debug = true
	}
	c.cfg = cfg
	c.logger = logger.CreatePrettyLogger(cfg.Debug)
	return nil
}

func (c *cli) runner() *app.Runner {
	return app.NewRunner(c.cfg, c.logger, os.Stdin, os.Stdout)
}
