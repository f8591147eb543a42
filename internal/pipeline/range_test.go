package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

func fiveColumnSchema() model.Schema {
	return model.Schema{
		{Column: "A", Field: "reviewApproved"},
		{Column: "B", Field: "productId"},
		{Column: "C", Field: "submitTimestamp"},
		{Column: "D", Field: "userAlias"},
		{Column: "E", Field: "productRating"},
	}
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name string
		opts model.RangeOptions
		want string
		open bool
	}{
		{name: "defaults", opts: model.RangeOptions{}, want: "Sheet1!A1:E", open: true},
		{name: "skip header", opts: model.RangeOptions{Skip: 2}, want: "Sheet1!A3:E", open: true},
		{name: "first page", opts: model.RangeOptions{Skip: 1, Length: 10, Page: 1}, want: "Sheet1!A2:E11"},
		{name: "third page", opts: model.RangeOptions{Skip: 2, Length: 10, Page: 3}, want: "Sheet1!A23:E32"},
		{name: "page zero is page one", opts: model.RangeOptions{Length: 5}, want: "Sheet1!A1:E5"},
		{name: "negative page stays open", opts: model.RangeOptions{Length: 5, Page: -1}, want: "Sheet1!A1:E", open: true},
		{name: "negative skip", opts: model.RangeOptions{Skip: -3}, want: "Sheet1!A1:E", open: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ResolveRange("Sheet1", fiveColumnSchema(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rng.String())
			assert.Equal(t, tt.open, rng.Open())
		})
	}
}

func TestResolveRangeQuotesSheetName(t *testing.T) {
	rng, err := ResolveRange("Form Responses 1", fiveColumnSchema(), model.RangeOptions{Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, "'Form Responses 1'!A2:E", rng.String())
}

func TestResolveRangeRejectsMissingInputs(t *testing.T) {
	_, err := ResolveRange("", fiveColumnSchema(), model.RangeOptions{})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = ResolveRange("Sheet1", nil, model.RangeOptions{})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}
