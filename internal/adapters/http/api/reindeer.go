package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/codehunt/internal/domain/reindeer"
	"github.com/okian/codehunt/internal/domain/types"
	"github.com/okian/codehunt/pkg/logger"
)

// ReindeerDependencies defines the day 4 operations.
type ReindeerDependencies interface {
	Strength(ctx context.Context, herd []reindeer.Reindeer) int32
	Contest(ctx context.Context, herd []reindeer.Contestant) (types.ContestResult, error)
	RecordRejected(puzzle, kind string)
}

// ReindeerHandler handles the day 4 endpoints.
type ReindeerHandler struct {
	deps         ReindeerDependencies
	log          logger.Logger
	maxBodyBytes int64
}

// NewReindeerHandler creates a new day 4 handler.
func NewReindeerHandler(deps ReindeerDependencies, log logger.Logger, maxBodyBytes int64) *ReindeerHandler {
	return &ReindeerHandler{deps: deps, log: log, maxBodyBytes: maxBodyBytes}
}

// HandleStrength handles POST /4/strength requests.
func (h *ReindeerHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	const op = "api.strength"
	herd, err := reindeer.DecodeHerd(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.reject(w, r, op, puzzleStrength, err)
		return
	}
	total := h.deps.Strength(r.Context(), herd)
	writeText(w, http.StatusOK, strconv.FormatInt(int64(total), 10))
}

// HandleContest handles POST /4/contest requests.
func (h *ReindeerHandler) HandleContest(w http.ResponseWriter, r *http.Request) {
	const op = "api.contest"
	herd, err := reindeer.DecodeContestants(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.reject(w, r, op, puzzleContest, err)
		return
	}
	result, err := h.deps.Contest(r.Context(), herd)
	if err != nil {
		status, code := classify(err)
		writeError(w, r, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// reject answers a body that could not be decoded.
func (h *ReindeerHandler) reject(w http.ResponseWriter, r *http.Request, op, puzzle string, err error) {
	status, code := classify(err)
	h.deps.RecordRejected(puzzle, code)
	h.log.Warn(r.Context(), "rejected herd",
		logger.String("op", op),
		logger.String("request_id", RequestIDFromContext(r.Context())),
		logger.Error(err))
	writeError(w, r, status, code, WrapKind(op, ErrBadRequest, err))
}
