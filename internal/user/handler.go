package user

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
	Create(ctx context.Context, actor auth.Actor, dto CreateUserDTO) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
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

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), *actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
		Role:   r.URL.Query().Get("role"),
		Search: r.URL.Query().Get("search"),
	}

	users, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.userID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, auth.ActionSuspendUser)
}

func (h *Handler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, auth.ActionReactivateUser)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, auth.ActionDeleteUser)
}

func (h *Handler) applyTransition(w http.ResponseWriter, r *http.Request, action auth.Action) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := h.userID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	result, err := h.Engine.Apply(r.Context(), workflow.TransitionRequest{
		Actor:    *actor,
		Action:   action,
		TargetID: id,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) userID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
