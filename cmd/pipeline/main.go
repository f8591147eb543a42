package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"go-review-pipeline/internal/config"
	"go-review-pipeline/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "reviews",
	Short:         "Fetch product reviews from the review sheet",
	Long:          `Read product review rows from a spreadsheet range, filter and paginate them, and write one JSON file with the reviews and average rating per product.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (default ./config.yaml)")
	rootCmd.AddCommand(fetchCmd, fetchAllCmd, pageCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file and the environment, then sets up
// logging. The closer releases the log file.
func loadConfig() (*config.Config, io.Closer, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}
