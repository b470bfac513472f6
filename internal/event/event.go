package event

import (
	eventDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/event"
	domain "github.com/frahmantamala/camp-management/internal/core/domain/event"
)

// The domain model lives in internal/core/domain/event so the workflow
// engine can depend on it without importing this package (which imports
// workflow for its handler). The aliases keep this package's API unchanged.
type (
	Status = domain.Status
	Event  = domain.Event
)

const (
	StatusPending   = domain.StatusPending
	StatusApproved  = domain.StatusApproved
	StatusRejected  = domain.StatusRejected
	StatusCancelled = domain.StatusCancelled
)

func AllStatuses() []Status {
	return domain.AllStatuses()
}

func ParseStatus(s string) (Status, error) {
	return domain.ParseStatus(s)
}

func ToDataModel(e *Event) *eventDatamodel.Event {
	return &eventDatamodel.Event{
		ID:              e.ID,
		Title:           e.Title,
		Location:        e.Location,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		CreatorID:       e.CreatorID,
		Status:          string(e.Status),
		StatusReason:    e.StatusReason,
		StatusChangedAt: e.StatusChangedAt,
		Version:         e.Version,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModel(m *eventDatamodel.Event) *Event {
	return &Event{
		ID:              m.ID,
		Title:           m.Title,
		Location:        m.Location,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		CreatorID:       m.CreatorID,
		Status:          Status(m.Status),
		StatusReason:    m.StatusReason,
		StatusChangedAt: m.StatusChangedAt,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*eventDatamodel.Event) []*Event {
	result := make([]*Event, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
