package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"go-review-pipeline/internal/auth"
	"go-review-pipeline/internal/config"
	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
	"go-review-pipeline/internal/pipeline"
)

// New builds the row reader selected by datastore.mode. Remote readers are
// wrapped with retries.
func New(ctx context.Context, cfg *config.Config) (pipeline.RowReader, error) {
	switch cfg.Datastore.Mode {
	case config.ModeSheets:
		creds := auth.NewServiceAccount(cfg.Auth.CredentialsFile)
		reader, err := NewSheetsReader(ctx, cfg.Datastore.SpreadsheetID, creds)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRetryingReader(reader, cfg.Retry), nil
	case config.ModeXLSX:
		return NewWorkbookReader(cfg.Datastore.File), nil
	case config.ModeCSV:
		return NewCSVReader(cfg.Datastore.File), nil
	case config.ModeAPI:
		reader, err := NewAPIReader(ctx, cfg.API.URL, &auth.APIKey{Key: cfg.API.Key})
		if err != nil {
			return nil, err
		}
		return pipeline.NewRetryingReader(reader, cfg.Retry), nil
	default:
		return nil, errors.Newf(errors.CodeConfigInvalid, "unknown datastore mode %q", cfg.Datastore.Mode)
	}
}

// sliceRange cuts the rows and columns addressed by rng out of a full sheet.
// Trailing empty cells are dropped from each row, the way the Sheets API
// returns values.
func sliceRange(rows [][]string, rng model.RangeDescriptor) ([][]any, error) {
	first, err := excelize.ColumnNameToNumber(rng.StartColumn)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("range %s: %v", rng, err))
	}
	last, err := excelize.ColumnNameToNumber(rng.EndColumn)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("range %s: %v", rng, err))
	}
	if last < first || rng.StartRow < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("range %s is empty", rng))
	}

	start := rng.StartRow - 1
	end := len(rows)
	if !rng.Open() && rng.EndRow < end {
		end = rng.EndRow
	}
	out := make([][]any, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		row := rows[i]
		lo, hi := first-1, min(last, len(row))
		cells := []any{}
		if lo < hi {
			for _, cell := range row[lo:hi] {
				cells = append(cells, cell)
			}
		}
		out = append(out, trimTrailingEmpty(cells))
	}
	// trailing empty rows are not part of the data
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func trimTrailingEmpty(cells []any) []any {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
