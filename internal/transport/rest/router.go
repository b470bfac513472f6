package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/camp-management/internal/association"
	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/camp"
	"github.com/frahmantamala/camp-management/internal/event"
	"github.com/frahmantamala/camp-management/internal/transport/middleware"
	"github.com/frahmantamala/camp-management/internal/transport/swagger"
	"github.com/frahmantamala/camp-management/internal/user"
	"github.com/frahmantamala/camp-management/internal/workflow"
)

// RegisterAllRoutes wires the full HTTP surface. All admin routes sit behind
// JWT auth plus a role check; mutating actions are additionally authorized
// inside the workflow engine.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, eventHandler *event.Handler, associationHandler *association.Handler, campHandler *camp.Handler, workflowHandler *workflow.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	roleAuth := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Public reference data
		r.Get("/camps", campHandler.GetCamps)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// Camps may request event participation once authenticated.
			pr.Post("/associations", associationHandler.CreateAssociation)

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(roleAuth.RequireAdmin())

				ar.Get("/stats", workflowHandler.GetStats)

				ar.Route("/users", func(ur chi.Router) {
					ur.Get("/", userHandler.ListUsers)
					ur.Get("/{id}", userHandler.GetUser)
					ur.Put("/{id}/suspend", userHandler.SuspendUser)
					ur.Put("/{id}/reactivate", userHandler.ReactivateUser)

					// Creation and deletion are global-admin actions; the
					// gate enforces this too, the route check just fails fast.
					ur.Group(func(gr chi.Router) {
						gr.Use(roleAuth.RequireGlobalAdmin())
						gr.Post("/", userHandler.CreateUser)
						gr.Delete("/{id}", userHandler.DeleteUser)
					})
				})

				ar.Route("/events", func(er chi.Router) {
					er.Get("/", eventHandler.ListEvents)
					er.Get("/{id}", eventHandler.GetEvent)
					er.Put("/{id}/status", eventHandler.ChangeStatus)
				})

				ar.Route("/associations", func(sr chi.Router) {
					sr.Get("/", associationHandler.ListAssociations)
					sr.Put("/{id}/revoke", associationHandler.Revoke)
					sr.Put("/{id}/cancel-rejection", associationHandler.CancelRejection)
				})
			})
		})
	})
}
