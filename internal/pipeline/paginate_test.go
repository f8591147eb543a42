package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name string
		opts model.PageOptions
		want []int
	}{
		{name: "no length returns input", opts: model.PageOptions{}, want: items},
		{name: "no length ignores page", opts: model.PageOptions{Page: 3}, want: items},
		{name: "zero length", opts: model.PageOptions{Length: model.IntPtr(0)}, want: []int{}},
		{name: "zero length with page", opts: model.PageOptions{Page: 2, Length: model.IntPtr(0)}, want: []int{}},
		{name: "limit keeps length minus one", opts: model.PageOptions{Length: model.IntPtr(3)}, want: []int{1, 2}},
		{name: "limit larger than input", opts: model.PageOptions{Length: model.IntPtr(10)}, want: items},
		{name: "first page", opts: model.PageOptions{Page: 1, Length: model.IntPtr(3)}, want: []int{1, 2, 3}},
		{name: "last partial page", opts: model.PageOptions{Page: 3, Length: model.IntPtr(3)}, want: []int{7}},
		{name: "page past the end", opts: model.PageOptions{Page: 4, Length: model.IntPtr(3)}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Paginate(items, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginateLimitReturnsLengthMinusOne(t *testing.T) {
	for length := 1; length <= 5; length++ {
		got, err := Paginate([]string{"a", "b", "c", "d", "e"}, model.PageOptions{Length: model.IntPtr(length)})
		require.NoError(t, err)
		assert.Len(t, got, length-1)
	}
}

func TestPaginateSecondPageOfThree(t *testing.T) {
	got, err := Paginate(sampleReviews(), model.PageOptions{Page: 2, Length: model.IntPtr(2)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B2", got[0].ProductID())
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	got, err := Paginate(items, model.PageOptions{Page: 1, Length: model.IntPtr(2)})
	require.NoError(t, err)
	got[0] = 99
	assert.Equal(t, []int{1, 2, 3}, items)
}

func TestPaginateRejectsNegativeOptions(t *testing.T) {
	_, err := Paginate([]int{1}, model.PageOptions{Page: -1})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = Paginate([]int{1}, model.PageOptions{Length: model.IntPtr(-2)})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}
