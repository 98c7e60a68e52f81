// Package service provides the puzzle solver that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/okian/codehunt/internal/domain/cubebits"
	"github.com/okian/codehunt/internal/domain/elves"
	"github.com/okian/codehunt/internal/domain/reindeer"
	"github.com/okian/codehunt/internal/domain/types"
	"github.com/okian/codehunt/internal/domain/warmup"
	"github.com/okian/codehunt/pkg/logger"
	"github.com/okian/codehunt/pkg/metrics"
)

// Puzzle names used as metric labels and stats keys.
const (
	PuzzleHello    = "hello"
	PuzzleFault    = "fault"
	PuzzleCubeBits = "cube_bits"
	PuzzleStrength = "strength"
	PuzzleContest  = "contest"
	PuzzleElves    = "elves"
)

var puzzles = []string{PuzzleHello, PuzzleFault, PuzzleCubeBits, PuzzleStrength, PuzzleContest, PuzzleElves}

// Service binds the puzzle solvers to logging and metrics. Solvers are pure;
// the only state kept here is a set of counters for /stats.
type Service struct {
	logger  logger.Logger
	metrics *metrics.Manager

	startedAt time.Time
	solved    map[string]*atomic.Int64
	rejected  map[string]*atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to metrics.Global().
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the start time reported by GetStats.
func WithClock(startedAt time.Time) Option {
	return func(s *Service) {
		if !startedAt.IsZero() {
			s.startedAt = startedAt
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		metrics:   metrics.Global(),
		startedAt: time.Now(),
		solved:    make(map[string]*atomic.Int64, len(puzzles)),
		rejected:  make(map[string]*atomic.Int64, len(puzzles)),
	}
	for _, p := range puzzles {
		s.solved[p] = new(atomic.Int64)
		s.rejected[p] = new(atomic.Int64)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// HelloWorld answers the day -1 greeting.
func (s *Service) HelloWorld(_ context.Context) string {
	s.recordSolved(PuzzleHello)
	return warmup.HelloWorld()
}

// Fault runs the day -1 deliberate fault. It never succeeds.
func (s *Service) Fault(ctx context.Context) error {
	err := warmup.Fault()
	s.recordRejected(PuzzleFault, "fault")
	s.logger.Error(ctx, "deliberate fault triggered", logger.Error(err))
	return err
}

// CubeBits parses the day 1 packet and returns its cubed XOR.
func (s *Service) CubeBits(ctx context.Context, segs []string) (int32, error) {
	nums, err := cubebits.ParseSegments(segs)
	if err != nil {
		kind := "invalid_segment"
		if errors.Is(err, cubebits.ErrSegmentCount) {
			kind = "segment_count"
		}
		s.recordRejected(PuzzleCubeBits, kind)
		s.logger.Debug(ctx, "rejected packet", logger.Int("segments", len(segs)), logger.Error(err))
		return 0, err
	}
	s.metrics.RecordPacketSize(len(nums))
	s.recordSolved(PuzzleCubeBits)
	return cubebits.CubeBits(nums), nil
}

// Strength sums the herd's strength.
func (s *Service) Strength(_ context.Context, herd []reindeer.Reindeer) int32 {
	s.metrics.RecordHerdSize(PuzzleStrength, len(herd))
	s.recordSolved(PuzzleStrength)
	return reindeer.Strength(herd)
}

// Contest judges the reindeer contest.
func (s *Service) Contest(ctx context.Context, herd []reindeer.Contestant) (types.ContestResult, error) {
	s.metrics.RecordHerdSize(PuzzleContest, len(herd))
	result, err := reindeer.Contest(herd)
	if err != nil {
		s.recordRejected(PuzzleContest, "empty_herd")
		s.logger.Debug(ctx, "rejected contest", logger.Error(err))
		return types.ContestResult{}, err
	}
	s.recordSolved(PuzzleContest)
	return result, nil
}

// CountElves counts elves and shelves in text.
func (s *Service) CountElves(ctx context.Context, text string) types.TextCounts {
	s.metrics.RecordTextLength(len(text))
	counts, err := elves.CountStrict(text)
	if err != nil {
		// Counts stay usable; only the leftover shelf figure is suspect.
		s.logger.Warn(ctx, "shelf pairing mismatch", logger.Error(err))
	}
	s.recordSolved(PuzzleElves)
	return counts
}

// RecordRejected counts a request rejected before it reached a solver,
// such as a body that failed to decode.
func (s *Service) RecordRejected(puzzle, kind string) {
	s.recordRejected(puzzle, kind)
}

// GetStats returns a snapshot of service counters.
func (s *Service) GetStats() map[string]interface{} {
	solved := make(map[string]int64, len(puzzles))
	rejected := make(map[string]int64, len(puzzles))
	var total int64
	for _, p := range puzzles {
		solved[p] = s.solved[p].Load()
		rejected[p] = s.rejected[p].Load()
		total += solved[p]
	}
	return map[string]interface{}{
		"uptimeSeconds":  int64(time.Since(s.startedAt).Seconds()),
		"startedAt":      s.startedAt.UTC().Format(time.RFC3339),
		"solved":         solved,
		"rejected":       rejected,
		"totalSolved":    total,
		"metricsEnabled": s.metrics.Enabled(),
	}
}

func (s *Service) recordSolved(puzzle string) {
	if c, ok := s.solved[puzzle]; ok {
		c.Add(1)
	}
	s.metrics.RecordPuzzleSolved(puzzle)
}

func (s *Service) recordRejected(puzzle, kind string) {
	if c, ok := s.rejected[puzzle]; ok {
		c.Add(1)
	}
	s.metrics.RecordPuzzleError(puzzle, kind)
}
