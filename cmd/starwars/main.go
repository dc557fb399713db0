package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tair/starwars-api/pkg/config"
	"github.com/tair/starwars-api/pkg/logger"
)

// app carries the configuration shared by every subcommand
type app struct {
	cfg *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "starwars",
		Short:        "Star Wars favorites API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.ServiceName, cfg.IsDevelopment())
			logger.SetLevel(cfg.LogLevel)
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		a.newServeCommand(),
		a.newMigrateCommand(),
		a.newSeedCommand(),
		a.newEventsCommand(),
	)
	return root
}
