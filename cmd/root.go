package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/config"
)

// cfg is loaded once per invocation, before any subcommand runs. Each
// subcommand validates only the settings its mode needs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "adscout",
	Short: "Market research for social media ad campaigns",
	Long:  "Researches competitors, pricing, events and employers for an ad brief via Linkup search, structures the findings, and generates ad media with Freepik.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupRuntime(cmd.Name())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// setupRuntime reads .env, config.yaml and ADSCOUT_* variables, then
// installs the global logger (with the rotating file sink when log.file
// is set) so provider clients and the pipeline log through zap.L().
func setupRuntime(command string) error {
	c, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "adscout: load config")
	}
	if err := config.InitLogger(c.Log); err != nil {
		return eris.Wrap(err, "adscout: init logger")
	}
	cfg = c

	zap.L().Debug("adscout: runtime ready",
		zap.String("command", command),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("linkup_key_set", cfg.Linkup.Key != ""),
		zap.Bool("freepik_key_set", cfg.Freepik.Key != ""),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
