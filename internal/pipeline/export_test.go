package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

func TestJSONFileWriterWritesBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "products")
	writer := NewJSONFileWriter(dir)

	bundle := &model.ProductBundle{
		SKU:           "b1",
		Reviews:       []model.Review{{"productId": "B1", "productRating": 5, "reviewApproved": "TRUE"}},
		ReviewAverage: 5,
	}
	path, err := writer.Write(context.Background(), bundle)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b1-reviews.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "b1", doc["sku"])
	assert.Equal(t, 5.0, doc["reviewAverage"])
	reviews, ok := doc["reviews"].([]any)
	require.True(t, ok)
	assert.Len(t, reviews, 1)
}

func TestJSONFileWriterOverwrites(t *testing.T) {
	dir := t.TempDir()
	writer := NewJSONFileWriter(dir)

	_, err := writer.Write(context.Background(), &model.ProductBundle{SKU: "b1", ReviewAverage: 1})
	require.NoError(t, err)
	path, err := writer.Write(context.Background(), &model.ProductBundle{SKU: "b1", ReviewAverage: 2})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reviewAverage": 2`)
}

func TestJSONFileWriterErrors(t *testing.T) {
	writer := NewJSONFileWriter(t.TempDir())

	_, err := writer.Write(context.Background(), &model.ProductBundle{})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = writer.Write(ctx, &model.ProductBundle{SKU: "b1"})
	assert.Equal(t, errors.CodeWriteError, errors.GetCode(err))
}

func TestJSONFileWriterUnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	writer := NewJSONFileWriter(filepath.Join(blocker, "products"))
	_, err := writer.Write(context.Background(), &model.ProductBundle{SKU: "b1"})
	assert.Equal(t, errors.CodeWriteError, errors.GetCode(err))
}
