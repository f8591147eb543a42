package pipeline

import (
	"context"

	"go-review-pipeline/internal/model"
)

// ReadRequest describes the rows a RowReader should return.
type ReadRequest struct {
	// Range is the sheet block holding the records.
	Range model.RangeDescriptor
	// SKU scopes the read to one product (upper case) for readers that
	// support it. Empty means all products.
	SKU string
	// Page is a paging hint for readers that page server side.
	Page model.PageOptions
}

// RowReader returns raw review rows from a data source.
type RowReader interface {
	ReadRows(ctx context.Context, req ReadRequest) ([][]any, error)
}

// RowReaderFunc adapts a function to RowReader.
type RowReaderFunc func(ctx context.Context, req ReadRequest) ([][]any, error)

func (f RowReaderFunc) ReadRows(ctx context.Context, req ReadRequest) ([][]any, error) {
	return f(ctx, req)
}
