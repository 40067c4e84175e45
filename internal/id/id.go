package id

import "sort"

// Next returns one past the largest value in nums, or 1 when there is none.
func Next(nums []int) int {
	maxN := 0
	for _, n := range nums {
		if n > maxN {
			maxN = n
		}
	}
	return maxN + 1
}

// Distinct returns the unique values of nums in ascending order.
func Distinct(nums []int) []int {
	seen := make(map[int]bool, len(nums))
	var out []int
	for _, n := range nums {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// Range is an inclusive run of numbers.
type Range struct {
	From, To int
}

// Gaps returns the runs missing from a numbering that should cover
// 1..max(nums). Values below 1 are ignored.
func Gaps(nums []int) []Range {
	var gaps []Range
	prev := 0
	for _, n := range Distinct(nums) {
		if n < 1 {
			continue
		}
		if n > prev+1 {
			gaps = append(gaps, Range{From: prev + 1, To: n - 1})
		}
		prev = n
	}
	return gaps
}
