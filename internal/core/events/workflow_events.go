package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTransitionApplied = "workflow.transition_applied"
	EventTypeEntityDeleted     = "workflow.entity_deleted"
	EventTypeUserCreated       = "workflow.user_created"
)

// TransitionPayload describes one committed state transition.
type TransitionPayload struct {
	ActorID       int64  `json:"actor_id"`
	EntityType    string `json:"entity_type"`
	EntityID      int64  `json:"entity_id"`
	Action        string `json:"action"`
	PreviousState string `json:"previous_state"`
	NewState      string `json:"new_state"`
	Reason        string `json:"reason,omitempty"`
}

// EntityDeletedPayload describes a hard delete. The audit trail keeps the
// only durable trace of the removed record.
type EntityDeletedPayload struct {
	ActorID    int64  `json:"actor_id"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
}

type UserCreatedPayload struct {
	ActorID int64  `json:"actor_id"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// NewTransitionAppliedEvent announces a committed state transition so
// notifiers and the audit trail can fan out.
func NewTransitionAppliedEvent(actorID int64, entityType string, entityID int64, action, previousState, newState, reason string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeTransitionApplied,
		Timestamp: time.Now(),
		Data: TransitionPayload{
			ActorID:       actorID,
			EntityType:    entityType,
			EntityID:      entityID,
			Action:        action,
			PreviousState: previousState,
			NewState:      newState,
			Reason:        reason,
		},
	}
}

func NewEntityDeletedEvent(actorID int64, entityType string, entityID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeEntityDeleted,
		Timestamp: time.Now(),
		Data: EntityDeletedPayload{
			ActorID:    actorID,
			EntityType: entityType,
			EntityID:   entityID,
		},
	}
}

func NewUserCreatedEvent(actorID, userID int64, email, userRole string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeUserCreated,
		Timestamp: time.Now(),
		Data: UserCreatedPayload{
			ActorID: actorID,
			UserID:  userID,
			Email:   email,
			Role:    userRole,
		},
	}
}
