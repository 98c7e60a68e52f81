package api

import (
	"context"
	"io"
	"net/http"

	"github.com/okian/codehunt/internal/domain/types"
	"github.com/okian/codehunt/pkg/logger"
)

// ElvesDependencies defines the day 6 operation.
type ElvesDependencies interface {
	CountElves(ctx context.Context, text string) types.TextCounts
	RecordRejected(puzzle, kind string)
}

// ElvesHandler handles the day 6 endpoint.
type ElvesHandler struct {
	deps         ElvesDependencies
	log          logger.Logger
	maxBodyBytes int64
}

// NewElvesHandler creates a new day 6 handler.
func NewElvesHandler(deps ElvesDependencies, log logger.Logger, maxBodyBytes int64) *ElvesHandler {
	return &ElvesHandler{deps: deps, log: log, maxBodyBytes: maxBodyBytes}
}

// HandleCount handles POST /6 requests. The body is raw text.
func (h *ElvesHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	const op = "api.count_elves"
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		status, code := classify(err)
		h.deps.RecordRejected(puzzleElves, code)
		h.log.Warn(r.Context(), "could not read text", logger.Error(err))
		writeError(w, r, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CountElves(r.Context(), string(body)))
}
