package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sangkips/laundromart-api/internal/config"
	"github.com/sangkips/laundromart-api/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "laundromart-api",
	Short: "Laundry and merchandise shop back office API",
	Long: `laundromart-api serves the shop dashboard: orders, receipts, stock,
loans, credits, expenses and reports.

Available subcommands:
  serve   - Run the HTTP API and scheduled jobs
  migrate - Create tables and seed the laundry catalog
  token   - Mint a development access token`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and installs the global logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	log, err := logger.Init(logger.Options{
		Mode:     cfg.Log.Mode,
		Level:    cfg.Log.Level,
		Filename: cfg.Log.Filename,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "init logger")
	}
	if cfg.EnvFileError != nil {
		log.Debug("no .env file loaded, using environment", zap.Error(cfg.EnvFileError))
	}
	return cfg, log, nil
}
