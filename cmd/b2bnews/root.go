package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/b2bnews/internal/config"
	"github.com/dmitrymomot/b2bnews/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "b2bnews",
		Short:        "Company news and product catalogue microsite",
		Long:         "b2bnews serves public news and product pages, a JSON API and an admin API backed by snapshot storage.",
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("b2bnews %s (commit: %s)\n", version, commit))

	root.AddCommand(
		newServeCmd(),
		newHealCmd(),
		newHashPasswordCmd(),
		newBackupCmd(),
	)
	return root
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Log, logger.RequestIDExtractor).With(slog.String("version", version))
	return cfg, log, nil
}
