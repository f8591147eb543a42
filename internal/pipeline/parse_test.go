package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

func idRatingApprovalSchema() model.Schema {
	return model.Schema{
		{Column: "A", Field: model.FieldProductID},
		{Column: "B", Field: model.FieldProductRating},
		{Column: "C", Field: model.FieldReviewApproved},
	}
}

func TestParseRowsAssignsFieldsByPosition(t *testing.T) {
	rows := [][]any{
		{"B1", 5, "TRUE"},
		{"B2", "4", true, "ignored extra cell"},
	}

	reviews, err := ParseRows(rows, idRatingApprovalSchema())
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, model.Review{"productId": "B1", "productRating": 5, "reviewApproved": "TRUE"}, reviews[0])
	assert.Equal(t, model.Review{"productId": "B2", "productRating": "4", "reviewApproved": "TRUE"}, reviews[1])
}

func TestParseRowsShortRowLeavesFieldsAbsent(t *testing.T) {
	reviews, err := ParseRows([][]any{{"B1"}}, idRatingApprovalSchema())
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	_, hasRating := reviews[0].Rating()
	assert.False(t, hasRating)
	assert.Equal(t, "B1", reviews[0].ProductID())
	assert.Equal(t, model.ApprovedFalse, reviews[0].Approved())
}

func TestParseRowsNormalizesApproval(t *testing.T) {
	tests := []struct {
		name string
		raw  []any
		want string
	}{
		{name: "bool true", raw: []any{"B1", 5, true}, want: "TRUE"},
		{name: "string TRUE", raw: []any{"B1", 5, "TRUE"}, want: "TRUE"},
		{name: "bool false", raw: []any{"B1", 5, false}, want: "FALSE"},
		{name: "lower case true", raw: []any{"B1", 5, "true"}, want: "FALSE"},
		{name: "number", raw: []any{"B1", 5, 1}, want: "FALSE"},
		{name: "empty", raw: []any{"B1", 5, ""}, want: "FALSE"},
		{name: "absent", raw: []any{"B1", 5}, want: "FALSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews, err := ParseRows([][]any{tt.raw}, idRatingApprovalSchema())
			require.NoError(t, err)
			assert.Equal(t, tt.want, reviews[0][model.FieldReviewApproved])
		})
	}
}

func TestParseRowsEmptyInput(t *testing.T) {
	reviews, err := ParseRows(nil, idRatingApprovalSchema())
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestParseRowsEmptySchema(t *testing.T) {
	_, err := ParseRows([][]any{{"B1"}}, nil)
	assert.Equal(t, errors.CodeSchemaMismatch, errors.GetCode(err))
}
