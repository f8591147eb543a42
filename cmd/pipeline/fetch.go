package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go-review-pipeline/internal/app"
	"go-review-pipeline/internal/config"
	"go-review-pipeline/internal/model"
	"go-review-pipeline/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch SKU [SKU...]",
	Short: "Write the reviews of the given products",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd, func(p *pipeline.Pipeline, opts model.FetchOptions) (*pipeline.Result, error) {
			return p.FetchProducts(cmd.Context(), args, opts)
		})
	},
}

var fetchAllCmd = &cobra.Command{
	Use:   "fetch-all",
	Short: "Write the reviews of every product in the sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFetch(cmd, func(p *pipeline.Pipeline, opts model.FetchOptions) (*pipeline.Result, error) {
			return p.FetchAll(cmd.Context(), opts)
		})
	},
}

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Print one page of raw review records as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, closer, err := loadConfig()
		if err != nil {
			return err
		}
		defer closer.Close()

		opts, err := fetchOptions(cmd, cfg)
		if err != nil {
			return err
		}
		p, err := app.NewPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		reviews, err := p.ReadPage(cmd.Context(), opts.PageOptions())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reviews)
	},
}

func init() {
	for _, c := range []*cobra.Command{fetchCmd, fetchAllCmd, pageCmd} {
		c.Flags().String("approved", "", "only reviews with this approval state (true or false)")
		c.Flags().Int("page", 0, "page number, starting at 1")
		c.Flags().Int("length", 0, "page length")
	}
}

func runFetch(cmd *cobra.Command, run func(*pipeline.Pipeline, model.FetchOptions) (*pipeline.Result, error)) error {
	cfg, closer, err := loadConfig()
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := fetchOptions(cmd, cfg)
	if err != nil {
		return err
	}
	p, err := app.NewPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	result, err := run(p, opts)
	if result != nil {
		for _, file := range result.Files() {
			fmt.Fprintln(cmd.OutOrStdout(), file)
		}
	}
	return err
}

// fetchOptions starts from the configured filter and applies the flags the
// user set.
func fetchOptions(cmd *cobra.Command, cfg *config.Config) (model.FetchOptions, error) {
	flags := cmd.Flags()
	if flags.Changed("approved") {
		cfg.Filter.Approved, _ = flags.GetString("approved")
	}
	if flags.Changed("page") {
		cfg.Filter.Page, _ = flags.GetInt("page")
	}
	if flags.Changed("length") {
		length, _ := flags.GetInt("length")
		cfg.Filter.Length = &length
	}
	return cfg.FetchOptions()
}
