package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/audit"
	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/core/common/validation"
	"github.com/frahmantamala/camp-management/internal/core/domain/association"
	"github.com/frahmantamala/camp-management/internal/core/domain/event"
	"github.com/frahmantamala/camp-management/internal/core/domain/user"
)

// UserStore is the persistence contract the engine needs for user
// transitions. Save and Delete are conditional on the version the snapshot
// was fetched at; a stale version fails with Conflict.
type UserStore interface {
	Get(ctx context.Context, id int64) (*user.User, error)
	Save(ctx context.Context, u *user.User, expectedVersion int64) error
	Delete(ctx context.Context, id int64, expectedVersion int64) error
	Counts(ctx context.Context) (user.Counts, error)
}

type EventStore interface {
	Get(ctx context.Context, id int64) (*event.Event, error)
	Save(ctx context.Context, e *event.Event, expectedVersion int64) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type AssociationStore interface {
	Get(ctx context.Context, id int64) (*association.CampEventAssociation, error)
	Save(ctx context.Context, a *association.CampEventAssociation, expectedVersion int64) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type Authorizer interface {
	Authorize(actor auth.Actor, action auth.Action, target auth.Target) error
}

type AuditEmitter interface {
	Emit(ctx context.Context, entry audit.Entry)
}

// TransitionRequest is one admin action against one entity. Status and
// Reason are payload fields; only the actions that need them read them.
type TransitionRequest struct {
	Actor    auth.Actor
	Action   auth.Action
	TargetID int64
	Status   string
	Reason   string
}

// Result carries the updated entity and the human-readable outcome message
// the console displays. Exactly one entity field is set, matching the action.
type Result struct {
	User        *user.User                        `json:"user,omitempty"`
	Event       *event.Event                      `json:"event,omitempty"`
	Association *association.CampEventAssociation `json:"association,omitempty"`
	Message     string                            `json:"message"`
}

// Stats is the on-demand aggregate snapshot for the admin dashboard. Counts
// are full scans at query time, never incrementally maintained.
type Stats struct {
	TotalUsers           int64            `json:"total_users"`
	ActiveUsers          int64            `json:"active_users"`
	SuspendedUsers       int64            `json:"suspended_users"`
	PendingEvents        int64            `json:"pending_events"`
	PendingAssociations  int64            `json:"pending_associations"`
	EventsByStatus       map[string]int64 `json:"events_by_status"`
	AssociationsByStatus map[string]int64 `json:"associations_by_status"`
}

// Engine validates and applies every workflow transition. It holds no state
// between calls; each Apply is fetch, authorize, check, mutate, persist,
// audit, in that order, aborting before mutation on any rule failure.
type Engine struct {
	users        UserStore
	events       EventStore
	associations AssociationStore
	gate         Authorizer
	auditor      AuditEmitter
	logger       *slog.Logger
}

func NewEngine(users UserStore, events EventStore, associations AssociationStore, gate Authorizer, auditor AuditEmitter, logger *slog.Logger) *Engine {
	return &Engine{
		users:        users,
		events:       events,
		associations: associations,
		gate:         gate,
		auditor:      auditor,
		logger:       logger,
	}
}

func (e *Engine) Apply(ctx context.Context, req TransitionRequest) (*Result, error) {
	switch req.Action {
	case auth.ActionSuspendUser, auth.ActionReactivateUser:
		return e.applyUserTransition(ctx, req)
	case auth.ActionDeleteUser:
		return e.deleteUser(ctx, req)
	case auth.ActionSetEventStatus:
		return e.applyEventStatus(ctx, req)
	case auth.ActionRevokeAssociation:
		return e.revokeAssociation(ctx, req)
	case auth.ActionCancelRejection:
		return e.cancelRejection(ctx, req)
	}

	e.logger.Warn("unknown workflow action", "action", string(req.Action))
	return nil, internal.ErrUnsupportedAction
}

func (e *Engine) applyUserTransition(ctx context.Context, req TransitionRequest) (*Result, error) {
	u, err := e.users.Get(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	if err := e.gate.Authorize(req.Actor, req.Action, auth.Target{Type: auth.TargetUser, ID: u.ID}); err != nil {
		return nil, err
	}

	previous := u.Status()
	snapshotVersion := u.Version

	var message string
	switch req.Action {
	case auth.ActionSuspendUser:
		if !u.CanBeSuspended() {
			return nil, internal.ErrInvalidTransition
		}
		u.Suspend()
		message = fmt.Sprintf("User %s has been suspended", u.Email)
	case auth.ActionReactivateUser:
		if !u.CanBeReactivated() {
			return nil, internal.ErrInvalidTransition
		}
		u.Reactivate()
		message = fmt.Sprintf("User %s has been reactivated", u.Email)
	}

	if err := e.users.Save(ctx, u, snapshotVersion); err != nil {
		return nil, err
	}

	e.auditor.Emit(ctx, audit.Entry{
		ActorID:       req.Actor.ID,
		EntityType:    auth.TargetUser,
		EntityID:      u.ID,
		Action:        string(req.Action),
		PreviousState: previous,
		NewState:      u.Status(),
	})

	return &Result{User: u, Message: message}, nil
}

func (e *Engine) deleteUser(ctx context.Context, req TransitionRequest) (*Result, error) {
	u, err := e.users.Get(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	if err := e.gate.Authorize(req.Actor, req.Action, auth.Target{Type: auth.TargetUser, ID: u.ID}); err != nil {
		return nil, err
	}

	previous := u.Status()
	if err := e.users.Delete(ctx, u.ID, u.Version); err != nil {
		return nil, err
	}

	// The audit row outlives the deleted record.
	e.auditor.Emit(ctx, audit.Entry{
		ActorID:       req.Actor.ID,
		EntityType:    auth.TargetUser,
		EntityID:      u.ID,
		Action:        string(req.Action),
		PreviousState: previous,
		NewState:      "deleted",
	})

	return &Result{Message: fmt.Sprintf("User %s has been deleted", u.Email)}, nil
}

func (e *Engine) applyEventStatus(ctx context.Context, req TransitionRequest) (*Result, error) {
	ev, err := e.events.Get(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	if err := e.gate.Authorize(req.Actor, req.Action, auth.Target{Type: auth.TargetEvent, ID: ev.ID}); err != nil {
		return nil, err
	}

	requested, err := event.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := ev.CanTransitionTo(requested); err != nil {
		return nil, err
	}

	previous := ev.Status
	snapshotVersion := ev.Version
	ev.SetStatus(requested, req.Reason)

	if err := e.events.Save(ctx, ev, snapshotVersion); err != nil {
		return nil, err
	}

	reason := req.Reason
	e.auditor.Emit(ctx, audit.Entry{
		ActorID:       req.Actor.ID,
		EntityType:    auth.TargetEvent,
		EntityID:      ev.ID,
		Action:        string(req.Action),
		PreviousState: previous.String(),
		NewState:      ev.Status.String(),
		Reason:        &reason,
	})

	message := fmt.Sprintf("Event status changed from %s to %s", previous, ev.Status)
	if validation.NonBlank(req.Reason) {
		message = fmt.Sprintf("%s. Reason: %s", message, req.Reason)
	}

	return &Result{Event: ev, Message: message}, nil
}

func (e *Engine) revokeAssociation(ctx context.Context, req TransitionRequest) (*Result, error) {
	a, err := e.associations.Get(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	if err := e.gate.Authorize(req.Actor, req.Action, auth.Target{Type: auth.TargetAssociation, ID: a.ID}); err != nil {
		return nil, err
	}

	if err := a.CanBeRevoked(); err != nil {
		return nil, err
	}

	if !validation.NonBlank(req.Reason) {
		return nil, internal.ErrReasonRequired
	}

	previous := a.Status
	snapshotVersion := a.Version
	a.Revoke(req.Reason)

	if err := e.associations.Save(ctx, a, snapshotVersion); err != nil {
		return nil, err
	}

	reason := req.Reason
	e.auditor.Emit(ctx, audit.Entry{
		ActorID:       req.Actor.ID,
		EntityType:    auth.TargetAssociation,
		EntityID:      a.ID,
		Action:        string(req.Action),
		PreviousState: previous.String(),
		NewState:      a.Status.String(),
		Reason:        &reason,
	})

	return &Result{Association: a, Message: "Association revoked successfully"}, nil
}

func (e *Engine) cancelRejection(ctx context.Context, req TransitionRequest) (*Result, error) {
	a, err := e.associations.Get(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	if err := e.gate.Authorize(req.Actor, req.Action, auth.Target{Type: auth.TargetAssociation, ID: a.ID}); err != nil {
		return nil, err
	}

	if err := a.CanCancelRejection(); err != nil {
		return nil, err
	}

	previous := a.Status
	snapshotVersion := a.Version
	a.CancelRejection()

	if err := e.associations.Save(ctx, a, snapshotVersion); err != nil {
		return nil, err
	}

	e.auditor.Emit(ctx, audit.Entry{
		ActorID:       req.Actor.ID,
		EntityType:    auth.TargetAssociation,
		EntityID:      a.ID,
		Action:        string(req.Action),
		PreviousState: previous.String(),
		NewState:      a.Status.String(),
	})

	return &Result{
		Association: a,
		Message:     "Association rejection cancelled successfully. Status reverted to pending.",
	}, nil
}

// Stats recomputes the dashboard counters from the stores at call time.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	userCounts, err := e.users.Counts(ctx)
	if err != nil {
		return nil, err
	}

	eventCounts, err := e.events.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	associationCounts, err := e.associations.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:           userCounts.Total,
		ActiveUsers:          userCounts.Active,
		SuspendedUsers:       userCounts.Suspended,
		PendingEvents:        eventCounts[event.StatusPending.String()],
		PendingAssociations:  associationCounts[association.StatusPending.String()],
		EventsByStatus:       eventCounts,
		AssociationsByStatus: associationCounts,
	}, nil
}
