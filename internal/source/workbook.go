package source

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/xuri/excelize/v2"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/pipeline"
)

// WorkbookReader reads review rows from a local .xlsx export of the sheet.
type WorkbookReader struct {
	path string
}

func NewWorkbookReader(path string) *WorkbookReader {
	return &WorkbookReader{path: path}
}

func (w *WorkbookReader) ReadRows(ctx context.Context, req pipeline.ReadRequest) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.TransportError("workbook "+w.path, err)
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, errors.TransportError("workbook "+w.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(req.Range.SheetName)
	if err != nil {
		return nil, errors.TransportError("workbook sheet "+req.Range.SheetName, err)
	}
	return sliceRange(rows, req.Range)
}

// CSVReader reads review rows from a CSV export. The sheet name of the
// range is ignored.
type CSVReader struct {
	path string
}

func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

func (c *CSVReader) ReadRows(ctx context.Context, req pipeline.ReadRequest) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.TransportError("csv "+c.path, err)
	}
	f, err := os.Open(c.path)
	if err != nil {
		return nil, errors.TransportError("csv "+c.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.TransportError("csv "+c.path, err)
	}
	return sliceRange(rows, req.Range)
}
