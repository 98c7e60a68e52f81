// Package huntcheck drives a running codehunt server with randomly generated
// puzzle cases and verifies every answer against the local solvers.
package huntcheck

import (
	"fmt"
	"time"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL string        // Base URL of the service
	Cases   int           // Number of cases to generate
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Seed    uint64        // Generator seed; equal seeds yield equal cases
	Verbose bool          // Log every case outcome
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.Cases <= 0:
		return fmt.Errorf("%w: cases must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Case is one request with the answer the server must give.
type Case struct {
	ID          string // sent as X-Request-ID
	Puzzle      string
	Method      string
	Path        string
	ContentType string
	Body        []byte
	WantStatus  int
	Want        string // exact text, or canonical JSON when WantJSON is set
	WantJSON    bool
}

// Stats holds run statistics.
type Stats struct {
	CasesGenerated int
	CasesSubmitted int
	CasesPassed    int
	CasesWrong     int
	CasesFailed    int
	ByPuzzle       map[string]int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
