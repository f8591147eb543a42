package main

import (
	"github.com/spf13/cobra"

	"go-review-pipeline/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP job API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, closer, err := loadConfig()
		if err != nil {
			return err
		}
		defer closer.Close()

		p, err := app.NewPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return app.Serve(cmd.Context(), cfg, p)
	},
}
