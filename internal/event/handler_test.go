package event_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/event"
	"github.com/frahmantamala/camp-management/internal/role"
	"github.com/frahmantamala/camp-management/internal/transport"
	"github.com/frahmantamala/camp-management/internal/workflow"
)

type mockEngine struct {
	applied []workflow.TransitionRequest
	result  *workflow.Result
	err     error
}

func (m *mockEngine) Apply(_ context.Context, req workflow.TransitionRequest) (*workflow.Result, error) {
	m.applied = append(m.applied, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockEngine) Stats(_ context.Context) (*workflow.Stats, error) {
	return &workflow.Stats{}, nil
}

var _ = Describe("Handler.ChangeStatus", func() {
	var (
		handler *event.Handler
		engine  *mockEngine
	)

	actor := auth.Actor{ID: 100, Email: "site@camp.test", Role: role.SiteAdmin}

	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/admin/events/1/status", strings.NewReader(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "1")
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
		ctx = auth.ContextWithActor(ctx, &actor)
		return req.WithContext(ctx)
	}

	BeforeEach(func() {
		engine = &mockEngine{result: &workflow.Result{Message: "ok"}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = event.NewHandler(transport.NewBaseHandler(logger), nil, engine)
	})

	It("should reject an unknown status before reaching the engine", func() {
		rec := httptest.NewRecorder()

		handler.ChangeStatus(rec, newRequest(`{"status":"archived"}`))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(engine.applied).To(BeEmpty())
	})

	It("should reject a missing status before reaching the engine", func() {
		rec := httptest.NewRecorder()

		handler.ChangeStatus(rec, newRequest(`{"reason":"no status"}`))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(engine.applied).To(BeEmpty())
	})

	It("should pass a valid override through to the engine", func() {
		rec := httptest.NewRecorder()

		handler.ChangeStatus(rec, newRequest(`{"status":"approved","reason":"looks good"}`))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(engine.applied).To(HaveLen(1))
		Expect(engine.applied[0].Action).To(Equal(auth.ActionSetEventStatus))
		Expect(engine.applied[0].TargetID).To(Equal(int64(1)))
		Expect(engine.applied[0].Status).To(Equal("approved"))
		Expect(engine.applied[0].Reason).To(Equal("looks good"))
	})
})
