package cubebits

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidSegment = errors.New("segment is not a 32-bit integer")
	ErrSegmentCount   = errors.New("segment count out of range")
)
