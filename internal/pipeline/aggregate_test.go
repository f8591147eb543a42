package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

func ratings(values ...any) []model.Review {
	out := make([]model.Review, len(values))
	for i, v := range values {
		out[i] = model.Review{"productId": "B1", "productRating": v}
	}
	return out
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		reviews []model.Review
		want    float64
	}{
		{name: "single", reviews: ratings(5), want: 5},
		{name: "integers", reviews: ratings(5, 3), want: 4},
		{name: "no rounding", reviews: ratings(5, 4, 4), want: 13.0 / 3.0},
		{name: "numeric strings", reviews: ratings("5", " 2 "), want: 3.5},
		{name: "whole floats", reviews: ratings(4.0, 2.0), want: 3},
		{name: "whole float strings", reviews: ratings("4.0", " 5.0 "), want: 4.5},
		{name: "json numbers", reviews: ratings(json.Number("1"), json.Number("2")), want: 1.5},
		{name: "zero rating", reviews: ratings(0, 4), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AverageRating(tt.reviews)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAverageRatingRejectsInvalidRatings(t *testing.T) {
	tests := []struct {
		name    string
		reviews []model.Review
	}{
		{name: "missing first", reviews: []model.Review{{"productId": "B1"}, {"productRating": 5}}},
		{name: "missing last", reviews: []model.Review{{"productRating": 5}, {"productId": "B1"}}},
		{name: "word", reviews: ratings(5, "great")},
		{name: "empty string", reviews: ratings("", 5)},
		{name: "fraction", reviews: ratings(4.5)},
		{name: "fractional string", reviews: ratings("4.5")},
		{name: "nil", reviews: ratings(nil)},
		{name: "bool", reviews: ratings(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AverageRating(tt.reviews)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidRating, errors.GetCode(err))
		})
	}
}

func TestAverageRatingNamesRawValue(t *testing.T) {
	_, err := AverageRating(ratings(5, "great"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "review 1")
	assert.Contains(t, err.Error(), `"great"`)
}

func TestAverageRatingEmpty(t *testing.T) {
	_, err := AverageRating(nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestNewBundle(t *testing.T) {
	bundle, err := NewBundle(ratings(5, 3))
	require.NoError(t, err)
	assert.Equal(t, "b1", bundle.SKU)
	assert.Len(t, bundle.Reviews, 2)
	assert.Equal(t, 4.0, bundle.ReviewAverage)

	_, err = NewBundle(nil)
	assert.Error(t, err)
}

func TestGroupByProductKeepsOrderAndAverages(t *testing.T) {
	reviews := []model.Review{
		{"productId": "B1", "productRating": 5, "userAlias": "first"},
		{"productId": "B2", "productRating": 2},
		{"productId": "B1", "productRating": 4, "userAlias": "second"},
		{"productId": "B1", "productRating": "4", "userAlias": "third"},
	}

	groups, err := GroupByProduct(reviews)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	b1 := groups["B1"]
	require.NotNil(t, b1)
	assert.Equal(t, "b1", b1.SKU)
	require.Len(t, b1.Reviews, 3)
	assert.Equal(t, "first", b1.Reviews[0]["userAlias"])
	assert.Equal(t, "second", b1.Reviews[1]["userAlias"])
	assert.Equal(t, "third", b1.Reviews[2]["userAlias"])

	single, err := AverageRating(b1.Reviews)
	require.NoError(t, err)
	assert.Equal(t, single, b1.ReviewAverage)
	assert.Equal(t, 13.0/3.0, b1.ReviewAverage)

	assert.Equal(t, 2.0, groups["B2"].ReviewAverage)
}

func TestGroupByProductFailsOnBadRating(t *testing.T) {
	_, err := GroupByProduct([]model.Review{
		{"productId": "B1", "productRating": 5},
		{"productId": "B2", "productRating": "n/a"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidRating, errors.GetCode(err))
	assert.Contains(t, err.Error(), `product "B2"`)
}
