package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
	"go-review-pipeline/pkg/utils"
)

// ArtifactWriter persists one product bundle and returns its identifier.
type ArtifactWriter interface {
	Write(ctx context.Context, bundle *model.ProductBundle) (string, error)
}

// JSONFileWriter writes each bundle to <outputDir>/<sku>-reviews.json.
type JSONFileWriter struct {
	outputs *utils.OutputManager
}

// NewJSONFileWriter creates a writer rooted at outputDir.
func NewJSONFileWriter(outputDir string) *JSONFileWriter {
	return &JSONFileWriter{outputs: utils.NewOutputManager(outputDir)}
}

func (w *JSONFileWriter) Write(ctx context.Context, bundle *model.ProductBundle) (string, error) {
	if bundle == nil || strings.TrimSpace(bundle.SKU) == "" {
		return "", errors.InvalidInput("bundle has no sku")
	}
	path := w.outputs.ArtifactPath(bundle.SKU)
	if err := ctx.Err(); err != nil {
		return "", errors.WriteError(path, err)
	}
	if err := w.outputs.EnsureOutputDirExists(); err != nil {
		return "", errors.WriteError(path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", errors.WriteError(path, err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		file.Close()
		return "", errors.WriteError(path, err)
	}
	if err := file.Close(); err != nil {
		return "", errors.WriteError(path, err)
	}
	return path, nil
}
