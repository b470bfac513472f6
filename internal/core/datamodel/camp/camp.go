package camp

import "time"

// Camp is a reference row only. Camp lifecycle is owned by another service;
// this service reads names to enrich association responses.
type Camp struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Camp) TableName() string {
	return "camps"
}
