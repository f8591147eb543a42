package pipeline

import (
	"strings"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// ResolveRange computes the sheet range holding the records of one page.
//
// The range spans the first to the last schema column and starts after
// opts.Skip header rows. With a positive Length and Page the range is closed
// and covers exactly Length rows of that page; otherwise it is open-ended.
// Page 0 is treated as page 1.
func ResolveRange(sheetName string, schema model.Schema, opts model.RangeOptions) (model.RangeDescriptor, error) {
	if strings.TrimSpace(sheetName) == "" {
		return model.RangeDescriptor{}, errors.InvalidInput("range requires a sheet name")
	}
	if len(schema) == 0 {
		return model.RangeDescriptor{}, errors.InvalidInput("range requires a non-empty schema")
	}

	page := opts.Page
	if page == 0 {
		page = 1
	}
	skip := opts.Skip
	if skip < 0 {
		skip = 0
	}

	rng := model.RangeDescriptor{
		SheetName:   sheetName,
		StartColumn: schema[0].Column,
		EndColumn:   schema[len(schema)-1].Column,
		StartRow:    1 + skip,
	}
	if opts.Length > 0 && page > 0 {
		rng.StartRow += opts.Length * (page - 1)
		rng.EndRow = rng.StartRow + opts.Length - 1
	}
	return rng, nil
}
