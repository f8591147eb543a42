package pipeline

import (
	"reflect"
	"strings"

	"go-review-pipeline/internal/model"
)

// FilterRecords keeps the records whose fields equal every value in match.
// Comparison is strict: same dynamic type and value. An empty match keeps
// everything. The input slice is not modified.
func FilterRecords(records []model.Review, match map[string]any) []model.Review {
	if len(match) == 0 {
		return records
	}

	filtered := make([]model.Review, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, match) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func matchesAll(rec model.Review, match map[string]any) bool {
	for key, want := range match {
		got, ok := rec[key]
		if !ok || !strictEqual(got, want) {
			return false
		}
	}
	return true
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// ApprovalMatch builds the approval filter for a tri-state option.
func ApprovalMatch(approved *bool) map[string]any {
	match := map[string]any{}
	if approved == nil {
		return match
	}
	if *approved {
		match[model.FieldReviewApproved] = model.ApprovedTrue
	} else {
		match[model.FieldReviewApproved] = model.ApprovedFalse
	}
	return match
}

// ProductMatch builds the product filter for a SKU. Product ids are stored
// upper case in the sheet.
func ProductMatch(sku string) map[string]any {
	return map[string]any{model.FieldProductID: strings.ToUpper(sku)}
}
