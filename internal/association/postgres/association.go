package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/association"
	associationDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/association"
)

// AssociationRepository backs both the listing service and the workflow
// engine's versioned store. The (camp_id, event_id) unique index is the
// authority on pair cardinality.
type AssociationRepository struct {
	db *gorm.DB
}

func NewAssociationRepository(db *gorm.DB) *AssociationRepository {
	return &AssociationRepository{db: db}
}

func (r *AssociationRepository) Create(ctx context.Context, a *associationDatamodel.CampEventAssociation) error {
	var existing associationDatamodel.CampEventAssociation
	err := r.db.WithContext(ctx).
		Where("camp_id = ? AND event_id = ?", a.CampID, a.EventID).
		First(&existing).Error
	if err == nil {
		return internal.NewConflictError("association already exists for this camp and event", internal.ErrCodeAssociationExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.NewInternalError("failed to check existing association", err)
	}

	if a.Version == 0 {
		a.Version = 1
	}

	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.NewConflictError("association already exists for this camp and event", internal.ErrCodeAssociationExists)
		}
		return internal.NewInternalError("failed to create association", err)
	}
	return nil
}

func (r *AssociationRepository) GetByID(ctx context.Context, id int64) (*associationDatamodel.CampEventAssociation, error) {
	var a associationDatamodel.CampEventAssociation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssociationNotFound
		}
		return nil, internal.NewInternalError("failed to fetch association", err)
	}
	return &a, nil
}

func (r *AssociationRepository) List(ctx context.Context, filter association.ListFilter) ([]*associationDatamodel.CampEventAssociation, error) {
	query := r.db.WithContext(ctx).Order("requested_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CampID > 0 {
		query = query.Where("camp_id = ?", filter.CampID)
	}
	if filter.EventID > 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}

	var associations []*associationDatamodel.CampEventAssociation
	if err := query.Find(&associations).Error; err != nil {
		return nil, internal.NewInternalError("failed to list associations", err)
	}
	return associations, nil
}

func (r *AssociationRepository) Get(ctx context.Context, id int64) (*association.CampEventAssociation, error) {
	model, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return association.FromDataModel(model), nil
}

// Save is conditional on the snapshot version. Revoke and cancel-rejection
// both go through here; approved_at and reason are written as-is, including
// nil to clear them.
func (r *AssociationRepository) Save(ctx context.Context, a *association.CampEventAssociation, expectedVersion int64) error {
	model := association.ToDataModel(a)
	model.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&associationDatamodel.CampEventAssociation{}).
		Where("id = ? AND version = ?", a.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"approved_at": model.ApprovedAt,
			"reason":      model.Reason,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return internal.NewInternalError("failed to save association", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrConcurrentWrite
	}

	a.Version = model.Version
	return nil
}

func (r *AssociationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&associationDatamodel.CampEventAssociation{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, internal.NewInternalError("failed to count associations", err)
	}

	counts := map[string]int64{
		association.StatusPending.String():  0,
		association.StatusApproved.String(): 0,
		association.StatusRejected.String(): 0,
		association.StatusRevoked.String():  0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
