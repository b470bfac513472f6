package auth

import (
	"log/slog"

	"github.com/frahmantamala/camp-management/internal"
)

// Action names every privileged operation the workflow engine can perform.
// Handlers never check roles themselves; they pass one of these through the
// gate.
type Action string

const (
	ActionCreateUser     Action = "user.create"
	ActionSuspendUser    Action = "user.suspend"
	ActionReactivateUser Action = "user.reactivate"
	ActionDeleteUser     Action = "user.delete"

	ActionSetEventStatus Action = "event.set_status"

	ActionRevokeAssociation Action = "association.revoke"
	ActionCancelRejection   Action = "association.cancel_rejection"
)

// Target identifies the entity an action is aimed at. For user-management
// actions the ID is compared against the actor for the self-action rule.
type Target struct {
	Type string
	ID   int64
}

const (
	TargetUser        = "user"
	TargetEvent       = "event"
	TargetAssociation = "association"
)

// Gate is the single authorization authority. Decisions depend only on the
// actor's role, the action, and the target, so identical inputs always
// produce identical outcomes.
type Gate struct {
	logger *slog.Logger
}

func NewGate(logger *slog.Logger) *Gate {
	return &Gate{logger: logger}
}

// Authorize returns nil when the actor may perform the action, or a
// Forbidden AppError describing the denial. Denials short-circuit before any
// state machine is consulted.
func (g *Gate) Authorize(actor Actor, action Action, target Target) error {
	switch action {
	case ActionSuspendUser, ActionReactivateUser, ActionDeleteUser:
		// Self-action is denied regardless of role, even for global admins.
		if target.Type == TargetUser && target.ID == actor.ID {
			g.logger.Warn("authorization denied: self action",
				"actor_id", actor.ID, "action", string(action))
			return internal.ErrSelfActionForbidden
		}
	}

	switch action {
	case ActionCreateUser, ActionDeleteUser:
		if !actor.Role.IsGlobalAdmin() {
			return g.deny(actor, action)
		}
	case ActionSuspendUser, ActionReactivateUser:
		if !actor.Role.IsAdmin() {
			return g.deny(actor, action)
		}
	case ActionSetEventStatus:
		if !actor.Role.IsAdmin() {
			return g.deny(actor, action)
		}
	case ActionRevokeAssociation, ActionCancelRejection:
		if !actor.Role.IsAdmin() {
			return g.deny(actor, action)
		}
	default:
		// Unknown actions are never allowed.
		return g.deny(actor, action)
	}

	return nil
}

func (g *Gate) deny(actor Actor, action Action) error {
	g.logger.Warn("authorization denied: insufficient role",
		"actor_id", actor.ID,
		"actor_role", actor.Role.String(),
		"action", string(action))
	return internal.ErrInsufficientRole
}
