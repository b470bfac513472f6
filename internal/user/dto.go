package user

import (
	"strings"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/core/common/validation"
	domain "github.com/frahmantamala/camp-management/internal/core/domain/user"
	"github.com/frahmantamala/camp-management/internal/role"
)

// CreateUserDTO is the request payload for manually provisioning an account.
// Admin-created accounts are active immediately.
type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (dto *CreateUserDTO) Validate() error {
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Role == "" {
		dto.Role = string(role.Member)
	}

	if err := validation.NewValidator().
		Field("email", dto.Email).Required().Email().
		Field("name", dto.Name).Required().MaxLength(120).
		Field("password", dto.Password).Required().
		Validate(); err != nil {
		return err
	}

	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodePasswordTooShort)
	}

	if _, err := role.Parse(dto.Role); err != nil {
		return err
	}
	return nil
}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Status string // "active", "suspended" or "" for all
	Role   string
	Search string // matches email or name, case-insensitive
}

// Counts are the aggregate user numbers for the stats dashboard. The
// definition lives in the domain package so the workflow engine can use it.
type Counts = domain.Counts
