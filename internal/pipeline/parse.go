package pipeline

import (
	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// ParseRows decodes raw sheet rows into reviews, one per row and in order.
func ParseRows(rows [][]any, schema model.Schema) ([]model.Review, error) {
	if len(schema) == 0 {
		return nil, errors.SchemaMismatch("cannot parse rows with an empty schema")
	}

	reviews := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, parseRow(row, schema))
	}
	return reviews, nil
}

func parseRow(row []any, schema model.Schema) model.Review {
	rec := make(model.Review, len(schema))
	for i, cell := range row {
		if i >= len(schema) {
			break
		}
		rec[schema[i].Field] = cell
	}
	rec[model.FieldReviewApproved] = normalizeApproval(rec[model.FieldReviewApproved])
	return rec
}

// normalizeApproval maps a raw approval cell to "TRUE" or "FALSE".
func normalizeApproval(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return model.ApprovedTrue
		}
	case string:
		if val == model.ApprovedTrue {
			return model.ApprovedTrue
		}
	}
	return model.ApprovedFalse
}
