package pipeline

import (
	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// Paginate slices items into one page or a length-limited prefix.
//
//   - Length nil: items unchanged.
//   - Length 0: empty.
//   - Page 0: the first Length-1 items (the limit branch keeps one less than
//     its own pagination branch; kept as is until the intended limit is
//     confirmed).
//   - otherwise: items[(Page-1)*Length : Page*Length], clamped.
func Paginate[T any](items []T, opts model.PageOptions) ([]T, error) {
	if err := validatePageOptions(opts); err != nil {
		return nil, err
	}
	if opts.Length == nil {
		return items, nil
	}

	length := *opts.Length
	switch {
	case length == 0:
		return []T{}, nil
	case opts.Page == 0:
		return limit(items, length-1), nil
	default:
		return page(items, opts.Page, length), nil
	}
}

func limit[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

func page[T any](items []T, pageNum, length int) []T {
	start := (pageNum - 1) * length
	if start >= len(items) {
		return []T{}
	}
	end := pageNum * length
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

func validatePageOptions(opts model.PageOptions) error {
	if opts.Page < 0 {
		return errors.Newf(errors.CodeInvalidInput, "page must be a non-negative integer, got %d", opts.Page)
	}
	if opts.Length != nil && *opts.Length < 0 {
		return errors.Newf(errors.CodeInvalidInput, "length must be a non-negative integer, got %d", *opts.Length)
	}
	return nil
}
