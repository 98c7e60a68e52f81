package api

import (
	"context"
	"net/http"

	"github.com/okian/codehunt/pkg/logger"
)

// WarmupDependencies defines the day -1 operations.
type WarmupDependencies interface {
	HelloWorld(ctx context.Context) string
	Fault(ctx context.Context) error
}

// WarmupHandler handles the day -1 endpoints.
type WarmupHandler struct {
	deps WarmupDependencies
	log  logger.Logger
}

// NewWarmupHandler creates a new warmup handler.
func NewWarmupHandler(deps WarmupDependencies, log logger.Logger) *WarmupHandler {
	return &WarmupHandler{deps: deps, log: log}
}

// HandleHello handles GET / requests.
func (h *WarmupHandler) HandleHello(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.deps.HelloWorld(r.Context()))
}

// HandleError handles GET /-1/error requests. It always answers 500.
func (h *WarmupHandler) HandleError(w http.ResponseWriter, r *http.Request) {
	const op = "api.warmup_error"
	err := h.deps.Fault(r.Context())
	if err == nil {
		err = ErrInternal
	}
	writeError(w, r, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
