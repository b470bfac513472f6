package workflow

import (
	"context"
	"net/http"

	"github.com/frahmantamala/camp-management/internal/transport"
)

type EngineAPI interface {
	Apply(ctx context.Context, req TransitionRequest) (*Result, error)
	Stats(ctx context.Context) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Engine EngineAPI
}

func NewHandler(baseHandler *transport.BaseHandler, engine EngineAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Engine:      engine,
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Engine.Stats(r.Context())
	if err != nil {
		h.Logger.Error("GetStats: failed to compute stats", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
