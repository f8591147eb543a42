package model

import (
	"fmt"
	"strings"
)

// Field names shared by the parser, filters and aggregator.
const (
	FieldReviewApproved = "reviewApproved"
	FieldProductID      = "productId"
	FieldProductRating  = "productRating"

	ApprovedTrue  = "TRUE"
	ApprovedFalse = "FALSE"
)

// SchemaEntry maps one spreadsheet column to a review field
type SchemaEntry struct {
	Column string `json:"col" mapstructure:"col"`
	Field  string `json:"field" mapstructure:"field"`
}

// Schema is the ordered column -> field mapping used to decode raw rows.
// Position i decodes raw cell i.
type Schema []SchemaEntry

// DefaultSchema is the layout of the review collection sheet (columns A..S).
func DefaultSchema() Schema {
	fields := []string{
		FieldReviewApproved,
		FieldProductID,
		"submitTimestamp",
		"userAlias",
		"userEmail",
		"userLocation",
		"userAgeOpt",
		"userGenderOpt",
		"userDescriptionOpt",
		"lengthOwnedOpt",
		"recommendProduct",
		FieldProductRating,
		"qualityRating",
		"improvesGameRating",
		"valueRating",
		"reviewSummary",
		"reviewBody",
		"recommendFriend",
		"recommendFriendReason",
	}
	schema := make(Schema, len(fields))
	for i, f := range fields {
		schema[i] = SchemaEntry{Column: string(rune('A' + i)), Field: f}
	}
	return schema
}

// Review is a single decoded review row, keyed by schema field name.
// Fields missing from a short row are absent, not nil.
type Review map[string]any

// ProductID returns the productId field as text ("" when absent).
func (r Review) ProductID() string {
	v, ok := r[FieldProductID]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Rating returns the raw productRating value.
func (r Review) Rating() (any, bool) {
	v, ok := r[FieldProductRating]
	return v, ok
}

// Approved returns the normalized approval marker.
func (r Review) Approved() string {
	if s, ok := r[FieldReviewApproved].(string); ok {
		return s
	}
	return ApprovedFalse
}

// ProductBundle is the per-product output document
type ProductBundle struct {
	SKU           string   `json:"sku"`
	Reviews       []Review `json:"reviews"`
	ReviewAverage float64  `json:"reviewAverage"`
}

// SKUFor derives the bundle SKU from a product id.
func SKUFor(productID string) string {
	return strings.ToLower(productID)
}
