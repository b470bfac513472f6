package audit

import "time"

// Record is one append-only audit log row. Rows are never updated or
// deleted, even when the subject entity is removed.
type Record struct {
	ID            string    `gorm:"primaryKey;column:id"`
	ActorID       int64     `gorm:"column:actor_id;not null"`
	EntityType    string    `gorm:"column:entity_type;not null;index"`
	EntityID      int64     `gorm:"column:entity_id;not null;index"`
	Action        string    `gorm:"column:action;not null"`
	PreviousState string    `gorm:"column:previous_state"`
	NewState      string    `gorm:"column:new_state"`
	Reason        *string   `gorm:"column:reason"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (Record) TableName() string {
	return "audit_log"
}
