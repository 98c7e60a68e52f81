package config

import "errors"

// Error kinds returned by Load and Validate; match them with errors.Is.
var (
	// ErrInvalidConfig marks a value that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrLoadConfig marks a source (file or environment) that could not be read.
	ErrLoadConfig = errors.New("load configuration")
)
