package huntcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/codehunt/pkg/logger"
)

// Run executes a complete check: health check, generation, concurrent
// submission and verification. It returns the collected statistics and
// ErrCasesFailed when any case did not pass.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting hunt check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("cases", config.Cases),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate cases
	cases, err := generateCases(ctx, config, stats)
	if err != nil {
		return nil, fmt.Errorf("case generation failed: %w", err)
	}

	// Step 3: Submit and verify concurrently
	submitCases(ctx, config, cases, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("check interrupted: %w", err)
	}
	if bad := stats.CasesWrong + stats.CasesFailed; bad > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrCasesFailed, bad, stats.CasesSubmitted)
	}

	logger.Get().Info(ctx, "check completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.BaseURL, config.Timeout)
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// The service answers /healthz with its Prometheus exposition.
	if resp.status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var passRate, casesPerSecond float64

	if stats.CasesSubmitted > 0 {
		passRate = float64(stats.CasesPassed) / float64(stats.CasesSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		casesPerSecond = float64(stats.CasesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("casesGenerated", stats.CasesGenerated),
		logger.Int("casesSubmitted", stats.CasesSubmitted),
		logger.Int("casesPassed", stats.CasesPassed),
		logger.Int("casesWrong", stats.CasesWrong),
		logger.Int("casesFailed", stats.CasesFailed),
		logger.Any("byPuzzle", stats.ByPuzzle),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("casesPerSecond", casesPerSecond))
}
