package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/audit"
	"github.com/frahmantamala/camp-management/internal/core/events"
)

// Entry is one committed workflow step as the emitter sees it, before it is
// assigned an ID and persisted.
type Entry struct {
	ActorID       int64
	EntityType    string
	EntityID      int64
	Action        string
	PreviousState string
	NewState      string
	Reason        *string
}

// Record is the domain view of a stored audit row.
type Record struct {
	ID            string    `json:"id"`
	ActorID       int64     `json:"actor_id"`
	EntityType    string    `json:"entity_type"`
	EntityID      int64     `json:"entity_id"`
	Action        string    `json:"action"`
	PreviousState string    `json:"previous_state,omitempty"`
	NewState      string    `json:"new_state,omitempty"`
	Reason        *string   `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RecorderAPI interface {
	Record(ctx context.Context, rec *auditDatamodel.Record) error
	List(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error)
}

// Emitter turns committed transitions into audit rows and bus events. It
// never fails the calling operation: the mutation is already committed by the
// time Emit runs, so failures here are logged and dropped.
type Emitter struct {
	recorder RecorderAPI
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewEmitter(recorder RecorderAPI, bus *events.EventBus, logger *slog.Logger) *Emitter {
	return &Emitter{
		recorder: recorder,
		bus:      bus,
		logger:   logger,
	}
}

func (e *Emitter) Emit(ctx context.Context, entry Entry) {
	rec := &auditDatamodel.Record{
		ID:            uuid.New().String(),
		ActorID:       entry.ActorID,
		EntityType:    entry.EntityType,
		EntityID:      entry.EntityID,
		Action:        entry.Action,
		PreviousState: entry.PreviousState,
		NewState:      entry.NewState,
		Reason:        entry.Reason,
		CreatedAt:     time.Now(),
	}

	if err := e.recorder.Record(ctx, rec); err != nil {
		e.logger.Error("failed to record audit entry",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"action", entry.Action,
			"error", err)
	}

	if e.bus != nil {
		reason := ""
		if entry.Reason != nil {
			reason = *entry.Reason
		}
		evt := events.NewTransitionAppliedEvent(
			entry.ActorID, entry.EntityType, entry.EntityID,
			entry.Action, entry.PreviousState, entry.NewState, reason)
		if err := e.bus.Publish(ctx, evt); err != nil {
			e.logger.Error("failed to publish transition event",
				"event_id", evt.EventID(), "error", err)
		}
	}
}

func FromDataModel(m *auditDatamodel.Record) *Record {
	return &Record{
		ID:            m.ID,
		ActorID:       m.ActorID,
		EntityType:    m.EntityType,
		EntityID:      m.EntityID,
		Action:        m.Action,
		PreviousState: m.PreviousState,
		NewState:      m.NewState,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

func FromDataModelSlice(models []*auditDatamodel.Record) []*Record {
	result := make([]*Record, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
