package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		nums []int
		want int
	}{
		{nil, 1},
		{[]int{1}, 2},
		{[]int{3, 1, 2}, 4},
		{[]int{1, 1, 1}, 2},
		{[]int{0}, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Next(tt.nums), "Next(%v)", tt.nums)
	}
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Distinct([]int{3, 1, 1, 2, 3}))
	assert.Empty(t, Distinct(nil))
}

func TestGaps(t *testing.T) {
	tests := []struct {
		nums []int
		want []Range
	}{
		{nil, nil},
		{[]int{1, 2, 3}, nil},
		{[]int{1, 1, 2, 2}, nil},
		{[]int{1, 3}, []Range{{2, 2}}},
		{[]int{4}, []Range{{1, 3}}},
		{[]int{0, 2}, []Range{{1, 1}}},
		{[]int{1, 4, 9}, []Range{{2, 3}, {5, 8}}},
		{[]int{1, 2_000_000_000}, []Range{{2, 1_999_999_999}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Gaps(tt.nums), "Gaps(%v)", tt.nums)
	}
}
