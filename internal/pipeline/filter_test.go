package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-review-pipeline/internal/model"
)

func sampleReviews() []model.Review {
	return []model.Review{
		{"productId": "B1", "productRating": 5, "reviewApproved": "TRUE"},
		{"productId": "B1", "productRating": 3, "reviewApproved": "FALSE"},
		{"productId": "B2", "productRating": 4, "reviewApproved": "TRUE"},
	}
}

func TestFilterRecordsEmptyMatchKeepsEverything(t *testing.T) {
	in := sampleReviews()
	assert.Equal(t, in, FilterRecords(in, nil))
	assert.Equal(t, in, FilterRecords(in, map[string]any{}))
}

func TestFilterRecordsKeepsOrder(t *testing.T) {
	in := sampleReviews()
	out := FilterRecords(in, ApprovalMatch(model.BoolPtr(true)))
	assert.Equal(t, []model.Review{in[0], in[2]}, out)

	out = FilterRecords(in, ApprovalMatch(model.BoolPtr(false)))
	assert.Equal(t, []model.Review{in[1]}, out)
}

func TestFilterRecordsStrictEquality(t *testing.T) {
	in := []model.Review{
		{"productRating": 5},
		{"productRating": "5"},
		{"productRating": 5.0},
		{"productRating": []any{5}},
	}

	assert.Equal(t, []model.Review{in[0]}, FilterRecords(in, map[string]any{"productRating": 5}))
	assert.Equal(t, []model.Review{in[1]}, FilterRecords(in, map[string]any{"productRating": "5"}))
	assert.Empty(t, FilterRecords(in, map[string]any{"productRating": []any{5}}))
}

func TestFilterRecordsMissingFieldNeverMatches(t *testing.T) {
	in := []model.Review{{"productId": "B1"}}
	assert.Empty(t, FilterRecords(in, map[string]any{"reviewApproved": "FALSE"}))
}

func TestApprovalMatch(t *testing.T) {
	assert.Empty(t, ApprovalMatch(nil))
	assert.Equal(t, map[string]any{"reviewApproved": "TRUE"}, ApprovalMatch(model.BoolPtr(true)))
	assert.Equal(t, map[string]any{"reviewApproved": "FALSE"}, ApprovalMatch(model.BoolPtr(false)))
}

func TestProductMatchUpperCasesSKU(t *testing.T) {
	match := ProductMatch("b1")
	assert.Equal(t, map[string]any{"productId": "B1"}, match)
	assert.Len(t, FilterRecords(sampleReviews(), match), 2)
}
