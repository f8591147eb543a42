package app

import (
	"context"
	"log/slog"

	"go-review-pipeline/internal/api"
	"go-review-pipeline/internal/api/handler"
	"go-review-pipeline/internal/config"
	"go-review-pipeline/internal/pipeline"
	"go-review-pipeline/internal/source"
	"go-review-pipeline/internal/store"
	"go-review-pipeline/pkg/router"
)

// NewPipeline wires the configured source and the JSON file writer into a
// review pipeline.
func NewPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	reader, err := source.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	writer := pipeline.NewJSONFileWriter(cfg.OutputDir)
	return pipeline.New(reader, writer, cfg.Settings(), pipeline.WithLogger(slog.Default()))
}

// Serve runs the job API until ctx is cancelled. Running jobs are awaited
// before it returns.
func Serve(ctx context.Context, cfg *config.Config, runner handler.Runner) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	h := handler.New(st, runner, cfg.JobTimeout())
	r := router.New()
	api.RegisterRoutes(r, h)

	err = r.Start(ctx, cfg.Server.Addr)
	h.Wait()
	return err
}
