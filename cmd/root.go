package cmd

import (
	"fmt"
	"os"

	"dirsync/core/config"
	"dirsync/core/httpclient"
	"dirsync/core/logger"
	"dirsync/feature/dirsync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dirsync",
	Short: "Directory to shared contacts sync",
	Long: `dirsync mirrors the enabled users of a Microsoft Entra ID tenant into the
Domain Shared Contacts of a Google Workspace domain.

It runs once from the command line or on demand behind an HTTP trigger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config for readable CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newService wires the sync service against the public endpoints.
func newService(cfg *config.Config, l *zap.Logger) (*dirsync.Service, error) {
	secrets, err := config.NewSecretProvider(cfg)
	if err != nil {
		return nil, err
	}

	base := httpclient.New(cfg.HTTP)
	ep := dirsync.DefaultEndpoints()

	return dirsync.NewService(
		secrets,
		dirsync.EntraSources(base, ep, l),
		dirsync.GoogleStores(base, ep, l),
		dirsync.Options{
			Environment: cfg.Sync.Environment,
			Concurrency: cfg.Sync.Concurrency,
			DryRun:      cfg.Sync.DryRun,
		},
		l,
	), nil
}
