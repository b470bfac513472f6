package association

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
	Create(ctx context.Context, req NewRequest) (*CampEventAssociation, error)
	GetByID(ctx context.Context, id int64) (*CampEventAssociation, error)
	ListDetailed(ctx context.Context, filter ListFilter) ([]*Detailed, error)
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

func (h *Handler) ListAssociations(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
	}
	if campID, err := strconv.ParseInt(r.URL.Query().Get("camp_id"), 10, 64); err == nil {
		filter.CampID = campID
	}
	if eventID, err := strconv.ParseInt(r.URL.Query().Get("event_id"), 10, 64); err == nil {
		filter.EventID = eventID
	}

	associations, err := h.Service.ListDetailed(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"associations": associations,
		"count":        len(associations),
	})
}

func (h *Handler) CreateAssociation(w http.ResponseWriter, r *http.Request) {
	var req NewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// Revoke ends an approved association. The blank-reason check runs here for
// fail-fast responses; the engine re-checks it before mutating.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid association id")
		return
	}

	var dto RevokeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Engine.Apply(r.Context(), workflow.TransitionRequest{
		Actor:    *actor,
		Action:   auth.ActionRevokeAssociation,
		TargetID: id,
		Reason:   dto.Reason,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CancelRejection(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid association id")
		return
	}

	result, err := h.Engine.Apply(r.Context(), workflow.TransitionRequest{
		Actor:    *actor,
		Action:   auth.ActionCancelRejection,
		TargetID: id,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
