package elves

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvariant = errors.New("shelf pairing invariant violated")
)
