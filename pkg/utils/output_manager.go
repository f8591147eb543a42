package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactSuffix is appended to the SKU to form an output file name.
const ArtifactSuffix = "-reviews.json"

// OutputManager handles output file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// ArtifactPath returns BaseOutputDir/<sku>-reviews.json. Path separators in
// the SKU are stripped so the file always lands in the output directory.
func (om *OutputManager) ArtifactPath(sku string) string {
	cleanFileName := filepath.Base(filepath.Clean("/" + sku + ArtifactSuffix))
	return filepath.Join(om.BaseOutputDir, cleanFileName)
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	if err := os.MkdirAll(om.BaseOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
