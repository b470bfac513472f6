package association

import "time"

// CampEventAssociation is the persistence model for a camp's request to
// participate in an event. One row per (camp, event) pair.
type CampEventAssociation struct {
	ID          int64      `gorm:"primaryKey"`
	CampID      int64      `gorm:"column:camp_id;not null;uniqueIndex:idx_camp_event"`
	EventID     int64      `gorm:"column:event_id;not null;uniqueIndex:idx_camp_event"`
	Status      string     `gorm:"column:status;not null;default:pending"`
	RequestedAt time.Time  `gorm:"column:requested_at;not null"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
	Reason      *string    `gorm:"column:reason"`
	Version     int64      `gorm:"column:version;not null;default:1"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (CampEventAssociation) TableName() string {
	return "camp_event_associations"
}
