package huntcheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/codehunt/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// response is what verification needs from a round trip.
type response struct {
	status    int
	requestID string
	body      []byte
}

// Get performs a GET request against path.
func (c *HTTPClient) Get(ctx context.Context, path string) (*response, error) {
	return c.do(ctx, Case{Method: http.MethodGet, Path: path})
}

// Submit sends one case and reads the whole answer.
func (c *HTTPClient) Submit(ctx context.Context, tc Case) (*response, error) {
	return c.do(ctx, tc)
}

func (c *HTTPClient) do(ctx context.Context, tc Case) (*response, error) {
	var body io.Reader
	if tc.Body != nil {
		body = bytes.NewReader(tc.Body)
	}
	req, err := http.NewRequestWithContext(ctx, tc.Method, c.baseURL+tc.Path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if tc.ContentType != "" {
		req.Header.Set("Content-Type", tc.ContentType)
	}
	if tc.ID != "" {
		req.Header.Set(requestIDHeader, tc.ID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &response{
		status:    resp.StatusCode,
		requestID: resp.Header.Get(requestIDHeader),
		body:      data,
	}, nil
}

// outcome classifies one submitted case.
type outcome int

const (
	outcomePassed outcome = iota
	outcomeWrong
	outcomeFailed
)

// submitCases submits cases concurrently using a worker pool.
func submitCases(ctx context.Context, config *Config, cases []Case, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting cases", logger.Int("cases", len(cases)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	var (
		passed    int64
		wrong     int64
		failed    int64
		submitted int64
	)
	byPuzzle := make(map[string]int)
	var byPuzzleMu sync.Mutex

	caseChan := make(chan Case, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for tc := range caseChan {
				if ctx.Err() != nil {
					continue
				}
				result, err := submitSingleCase(ctx, client, tc)

				atomic.AddInt64(&submitted, 1)
				switch result {
				case outcomePassed:
					atomic.AddInt64(&passed, 1)
					if config.Verbose {
						log.Debug(ctx, "case passed", logger.String("id", tc.ID), logger.String("puzzle", tc.Puzzle))
					}
				case outcomeWrong:
					atomic.AddInt64(&wrong, 1)
					log.Warn(ctx, "wrong answer",
						logger.String("id", tc.ID),
						logger.String("puzzle", tc.Puzzle),
						logger.String("path", tc.Path),
						logger.Error(err))
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "case failed",
						logger.String("id", tc.ID),
						logger.String("puzzle", tc.Puzzle),
						logger.Error(err))
				}

				byPuzzleMu.Lock()
				byPuzzle[tc.Puzzle]++
				byPuzzleMu.Unlock()
			}
		}()
	}

	// Feed the workers
	go func() {
		defer close(caseChan)
		for _, tc := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- tc:
			}
		}
	}()

	wg.Wait()

	stats.CasesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.CasesPassed = int(atomic.LoadInt64(&passed))
	stats.CasesWrong = int(atomic.LoadInt64(&wrong))
	stats.CasesFailed = int(atomic.LoadInt64(&failed))
	stats.ByPuzzle = byPuzzle

	log.Info(ctx, "case submission completed",
		logger.Int("passed", stats.CasesPassed),
		logger.Int("wrong", stats.CasesWrong),
		logger.Int("failed", stats.CasesFailed))
}

// submitSingleCase sends tc and verifies the answer.
func submitSingleCase(ctx context.Context, client *HTTPClient, tc Case) (outcome, error) {
	resp, err := client.Submit(ctx, tc)
	if err != nil {
		return outcomeFailed, err
	}
	if err := verifyResponse(tc, resp); err != nil {
		return outcomeWrong, err
	}
	return outcomePassed, nil
}
