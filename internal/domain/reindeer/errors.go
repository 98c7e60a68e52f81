package reindeer

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyHerd    = errors.New("herd must contain at least one reindeer")
	ErrDecode       = errors.New("decode herd failed")
	ErrMissingField = errors.New("missing field")
)
