package event

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/transport"
	"github.com/frahmantamala/camp-management/internal/workflow"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Engine  workflow.EngineAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, engine workflow.EngineAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Engine:      engine,
	}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	events, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ev, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ev)
}

// ChangeStatus applies an admin status override through the workflow engine.
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var dto ChangeStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Engine.Apply(r.Context(), workflow.TransitionRequest{
		Actor:    *actor,
		Action:   auth.ActionSetEventStatus,
		TargetID: id,
		Status:   dto.Status,
		Reason:   dto.Reason,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
