package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchemaColumns(t *testing.T) {
	schema := DefaultSchema()
	assert.Len(t, schema, 19)
	assert.Equal(t, SchemaEntry{Column: "A", Field: FieldReviewApproved}, schema[0])
	assert.Equal(t, SchemaEntry{Column: "L", Field: FieldProductRating}, schema[11])
	assert.Equal(t, "S", schema[18].Column)
}

func TestReviewAccessors(t *testing.T) {
	r := Review{FieldProductID: "B1", FieldProductRating: 5, FieldReviewApproved: "TRUE"}
	assert.Equal(t, "B1", r.ProductID())
	rating, ok := r.Rating()
	assert.True(t, ok)
	assert.Equal(t, 5, rating)
	assert.Equal(t, ApprovedTrue, r.Approved())

	assert.Equal(t, "1234", Review{FieldProductID: 1234}.ProductID())
	assert.Equal(t, "", Review{}.ProductID())
	assert.Equal(t, ApprovedFalse, Review{}.Approved())
}

func TestRangeDescriptorString(t *testing.T) {
	assert.Equal(t, "Sheet1!A3:E13", RangeDescriptor{SheetName: "Sheet1", StartColumn: "A", StartRow: 3, EndColumn: "E", EndRow: 13}.String())
	assert.Equal(t, "Sheet1!A3:E", RangeDescriptor{SheetName: "Sheet1", StartColumn: "A", StartRow: 3, EndColumn: "E"}.String())
	assert.Equal(t, "'Bob''s sheet'!A1:B", RangeDescriptor{SheetName: "Bob's sheet", StartColumn: "A", StartRow: 1, EndColumn: "B"}.String())
}

func TestSKUFor(t *testing.T) {
	assert.Equal(t, "ab12", SKUFor("AB12"))
}
