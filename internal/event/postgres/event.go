package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal"
	eventDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/event"
	"github.com/frahmantamala/camp-management/internal/event"
)

// EventRepository backs both the event listing service and the workflow
// engine's versioned store.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*eventDatamodel.Event, error) {
	var ev eventDatamodel.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEventNotFound
		}
		return nil, internal.NewInternalError("failed to fetch event", err)
	}
	return &ev, nil
}

func (r *EventRepository) List(ctx context.Context, filter event.ListFilter) ([]*eventDatamodel.Event, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var events []*eventDatamodel.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, internal.NewInternalError("failed to list events", err)
	}
	return events, nil
}

func (r *EventRepository) Get(ctx context.Context, id int64) (*event.Event, error) {
	model, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return event.FromDataModel(model), nil
}

// Save is conditional on the snapshot version; zero rows affected means a
// concurrent writer won and the caller must refetch.
func (r *EventRepository) Save(ctx context.Context, ev *event.Event, expectedVersion int64) error {
	model := event.ToDataModel(ev)
	model.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&eventDatamodel.Event{}).
		Where("id = ? AND version = ?", ev.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":            model.Status,
			"status_reason":     model.StatusReason,
			"status_changed_at": model.StatusChangedAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return internal.NewInternalError("failed to save event", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrConcurrentWrite
	}

	ev.Version = model.Version
	return nil
}

// TitlesByID resolves event IDs to titles for association response
// enrichment. Missing IDs are absent from the map.
func (r *EventRepository) TitlesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	var events []*eventDatamodel.Event
	if err := r.db.WithContext(ctx).Select("id", "title").Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, internal.NewInternalError("failed to resolve event titles", err)
	}

	titles := make(map[int64]string, len(events))
	for _, ev := range events {
		titles[ev.ID] = ev.Title
	}
	return titles, nil
}

func (r *EventRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&eventDatamodel.Event{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, internal.NewInternalError("failed to count events", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, st := range event.AllStatuses() {
		counts[st.String()] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
