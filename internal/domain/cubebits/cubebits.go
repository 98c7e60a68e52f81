// Package cubebits solves the day 1 puzzle: XOR a packet of integers
// together and cube the result.
package cubebits

import (
	"fmt"
	"strconv"
)

// Packet bounds for the number of path segments.
const (
	MinSegments = 1
	MaxSegments = 20
)

// ParseSegments converts path segments into a packet of int32 values.
func ParseSegments(segs []string) ([]int32, error) {
	if len(segs) < MinSegments || len(segs) > MaxSegments {
		return nil, fmt.Errorf("%w: got %d, want %d..%d", ErrSegmentCount, len(segs), MinSegments, MaxSegments)
	}
	nums := make([]int32, len(segs))
	for i, s := range segs {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidSegment, s, i)
		}
		nums[i] = int32(n)
	}
	return nums, nil
}

// CubeBits folds nums with XOR starting from zero and cubes the result.
// The cube wraps around like any int32 multiplication.
func CubeBits(nums []int32) int32 {
	var acc int32
	for _, n := range nums {
		acc ^= n
	}
	return acc * acc * acc
}
