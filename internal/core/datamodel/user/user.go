package user

import "time"

// User is the persistence model backing the users table.
type User struct {
	ID           int64      `gorm:"primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         string     `gorm:"column:role;not null;default:member"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	Version      int64      `gorm:"column:version;not null;default:1"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
