package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal/audit"
	auditDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/audit"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RecorderAPI {
	return &AuditRepository{db: db}
}

// Record appends one row. The table is append-only; nothing here updates or
// deletes.
func (r *AuditRepository) Record(ctx context.Context, rec *auditDatamodel.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *AuditRepository) List(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID > 0 {
		query = query.Where("entity_id = ?", entityID)
	}

	var records []*auditDatamodel.Record
	err := query.Find(&records).Error
	return records, err
}
