// Command minealert runs the landmine detection demo: a simulated drone,
// hotspot-based detections, SQLite persistence and an HTTP dashboard API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ishant3366/minealert/internal/config"
)

var (
	cfgPath string
	debug   bool
)

func main() {
	root := &cobra.Command{
		Use:          "minealert",
		Short:        "Landmine detection demo dashboard backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "minealert.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newAnnotateCmd())
	root.AddCommand(newTokenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies CLI overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	if debug {
		cfg.Logging.Debug = true
	}
	return cfg, nil
}

// newLogger builds the process logger.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Logging.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
