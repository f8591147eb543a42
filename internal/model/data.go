package model

import (
	"fmt"
	"strings"
)

// PageOptions controls pagination of an ordered collection.
// Length nil means no limit; Page 0 means no page was given.
type PageOptions struct {
	Page   int  `json:"page,omitempty"`
	Length *int `json:"length,omitempty"`
}

// FetchOptions are the per-request filters of a fetch.
// Approved nil matches every approval state.
type FetchOptions struct {
	Approved *bool `json:"approved,omitempty"`
	Page     int   `json:"page,omitempty"`
	Length   *int  `json:"length,omitempty"`
}

// PageOptions returns the pagination part of the fetch options.
func (o FetchOptions) PageOptions() PageOptions {
	return PageOptions{Page: o.Page, Length: o.Length}
}

// RangeOptions feed range resolution
type RangeOptions struct {
	Skip   int
	Length int
	Page   int
}

// RangeDescriptor addresses a block of sheet rows. EndRow 0 means the
// range runs to the end of the data.
type RangeDescriptor struct {
	SheetName   string `json:"sheet_name"`
	StartColumn string `json:"start_column"`
	StartRow    int    `json:"start_row"`
	EndColumn   string `json:"end_column"`
	EndRow      int    `json:"end_row,omitempty"`
}

// Open reports whether the range has no last row.
func (r RangeDescriptor) Open() bool {
	return r.EndRow <= 0
}

// String renders the range in A1 notation, e.g. Sheet1!A3:E13 or Sheet1!A3:E.
func (r RangeDescriptor) String() string {
	var b strings.Builder
	b.WriteString(quoteSheetName(r.SheetName))
	fmt.Fprintf(&b, "!%s%d:%s", r.StartColumn, r.StartRow, r.EndColumn)
	if !r.Open() {
		fmt.Fprintf(&b, "%d", r.EndRow)
	}
	return b.String()
}

func quoteSheetName(name string) string {
	for _, c := range name {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

// IntPtr is a small helper for optional lengths.
func IntPtr(v int) *int {
	return &v
}

// BoolPtr is a small helper for the tri-state approval filter.
func BoolPtr(v bool) *bool {
	return &v
}
