package huntcheck

import "errors"

// Sentinel kinds for check failures.
var (
	ErrInvalidConfig    = errors.New("invalid check config")
	ErrUnhealthy        = errors.New("service unhealthy")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrWrongAnswer      = errors.New("wrong answer")
	ErrRequestIDLost    = errors.New("request id not echoed")
	ErrCasesFailed      = errors.New("cases failed")
)
