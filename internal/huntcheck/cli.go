package huntcheck

import (
	"fmt"
	"os"

	"github.com/okian/codehunt/pkg/logger"
)

// SetupLogging initializes the global logger for the CLI. Verbose runs log
// at debug level so every passing case is reported too.
func SetupLogging(verbose bool) error {
	if err := logger.InitWith(os.Stdout, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the hunt check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Code Hunt Check Tool
====================

Generates random puzzle cases, submits them concurrently to a running
codehunt server and verifies every answer against the local solvers.

Usage:
  go run ./cmd/hunt-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -cases int
        Number of cases to generate and submit (default 600)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -seed uint
        Generator seed; equal seeds produce equal cases (default: current time)
  -verbose
        Log every passing case
  -help
        Show this help message

Examples:
  # Check a local server with default settings
  go run ./cmd/hunt-check

  # Reproduce a failing run
  go run ./cmd/hunt-check -seed 42 -cases 60 -verbose
`)
}
