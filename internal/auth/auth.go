package auth

import (
	"context"

	"github.com/frahmantamala/camp-management/internal/role"
)

type ctxKey string

const ContextActorKey ctxKey = "actor"

// Actor is the authenticated identity performing a request. Role is fixed
// for the lifetime of the request; it is loaded once by the auth middleware.
type Actor struct {
	ID    int64     `json:"id"`
	Email string    `json:"email"`
	Role  role.Role `json:"role"`
}

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	a, ok := ctx.Value(ContextActorKey).(*Actor)
	return a, ok
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}
