package warmup

import "errors"

// Sentinel error kinds for this package.
var (
	ErrFault = errors.New("deliberate fault")
)
