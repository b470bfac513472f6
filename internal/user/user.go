package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/user"
	domain "github.com/frahmantamala/camp-management/internal/core/domain/user"
	"github.com/frahmantamala/camp-management/internal/role"
)

// The domain model lives in internal/core/domain/user so the workflow
// engine can depend on it without importing this package (which imports
// workflow for its handler). The aliases keep this package's API unchanged.
type User = domain.User

const (
	StatusActive    = domain.StatusActive
	StatusSuspended = domain.StatusSuspended
)

func NewUser(dto CreateUserDTO, passwordHash string, userRole role.Role) *User {
	now := time.Now()
	return &User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: passwordHash,
		Role:         userRole,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		Version:      u.Version,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         role.Role(m.Role),
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*userDatamodel.User) []*User {
	result := make([]*User, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
