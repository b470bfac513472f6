package event

import "time"

// Event is the persistence model backing the events table.
type Event struct {
	ID              int64      `gorm:"primaryKey"`
	Title           string     `gorm:"column:title;not null"`
	Location        string     `gorm:"column:location"`
	StartDate       time.Time  `gorm:"column:start_date"`
	EndDate         time.Time  `gorm:"column:end_date"`
	CreatorID       int64      `gorm:"column:creator_id;not null"`
	Status          string     `gorm:"column:status;not null;default:pending"`
	StatusReason    *string    `gorm:"column:status_reason"`
	StatusChangedAt *time.Time `gorm:"column:status_changed_at"`
	Version         int64      `gorm:"column:version;not null;default:1"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (Event) TableName() string {
	return "events"
}
