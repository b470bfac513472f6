package user

import (
	"time"

	"github.com/frahmantamala/camp-management/internal/role"
)

// User is the domain model for an account managed through the admin console.
// A user is either active or suspended; there is no third state.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         role.Role  `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Version      int64      `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

func (u *User) Status() string {
	if u.IsActive {
		return StatusActive
	}
	return StatusSuspended
}

func (u *User) CanBeSuspended() bool {
	return u.IsActive
}

func (u *User) CanBeReactivated() bool {
	return !u.IsActive
}

// Suspend flips the account to suspended. Login is rejected for suspended
// accounts; data is preserved.
func (u *User) Suspend() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

func (u *User) Reactivate() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
}

// Counts are the aggregate user numbers for the stats dashboard.
type Counts struct {
	Total     int64 `json:"total_users"`
	Active    int64 `json:"active_users"`
	Suspended int64 `json:"suspended_users"`
}
