package main

import (
	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Portfolio site API and admin tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to YAML config file")
}

// setup loads the config and builds the process logger.
func setup() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewOrFallback(cfg.LogDir(), cfg.IsDev()), nil
}
