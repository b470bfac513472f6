package camp

import (
	"context"
	"net/http"

	"github.com/frahmantamala/camp-management/internal/transport"
)

type ServiceAPI interface {
	GetAllCamps(ctx context.Context) ([]*Camp, error)
	GetCamp(ctx context.Context, id int64) (*Camp, error)
	NamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetCamps(w http.ResponseWriter, r *http.Request) {
	camps, err := h.Service.GetAllCamps(r.Context())
	if err != nil {
		h.Logger.Error("GetCamps: failed to get camps", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get camps")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"camps": camps,
	})
}
