package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/codehunt/pkg/logger"
)

// CubeBitsDependencies defines the day 1 operation.
type CubeBitsDependencies interface {
	CubeBits(ctx context.Context, segs []string) (int32, error)
}

// CubeBitsHandler handles the day 1 packet endpoint.
type CubeBitsHandler struct {
	deps CubeBitsDependencies
	log  logger.Logger
}

// NewCubeBitsHandler creates a new day 1 handler.
func NewCubeBitsHandler(deps CubeBitsDependencies, log logger.Logger) *CubeBitsHandler {
	return &CubeBitsHandler{deps: deps, log: log}
}

// HandleCubeBits handles GET /1/{nums...} requests.
func (h *CubeBitsHandler) HandleCubeBits(w http.ResponseWriter, r *http.Request) {
	const op = "api.cube_bits"
	var segs []string
	// A trailing slash ends the packet; it is not an empty segment.
	if raw := strings.TrimSuffix(r.PathValue("nums"), "/"); raw != "" {
		segs = strings.Split(raw, "/")
	}

	got, err := h.deps.CubeBits(r.Context(), segs)
	if err != nil {
		status, code := classify(err)
		if status >= statusInternalError {
			h.log.Error(r.Context(), "cube bits failed", logger.Error(err))
		}
		writeError(w, r, status, code, Wrap(op, err))
		return
	}
	writeText(w, http.StatusOK, strconv.FormatInt(int64(got), 10))
}
