package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal"
	userDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/user"
	"github.com/frahmantamala/camp-management/internal/user"
)

// UserRepository backs both the user service (list/create) and the workflow
// engine's versioned store (get/save/delete with optimistic concurrency).
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	existing, err := r.GetByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return err
	}
	if existing != nil {
		return internal.ErrEmailTaken
	}

	if u.Version == 0 {
		u.Version = 1
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrEmailTaken
		}
		return internal.NewInternalError("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to fetch user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to fetch user", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*userDatamodel.User, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	switch filter.Status {
	case user.StatusActive:
		query = query.Where("is_active = ?", true)
	case user.StatusSuspended:
		query = query.Where("is_active = ?", false)
	}

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	var users []*userDatamodel.User
	if err := query.Find(&users).Error; err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// Get returns the domain snapshot the workflow engine transitions against.
func (r *UserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	model, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(model), nil
}

// Save writes the mutated user conditionally on the version the snapshot was
// fetched at. Zero rows affected means another writer got there first.
func (r *UserRepository) Save(ctx context.Context, u *user.User, expectedVersion int64) error {
	model := user.ToDataModel(u)
	model.Version = expectedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ? AND version = ?", u.ID, expectedVersion).
		Updates(map[string]interface{}{
			"is_active":  model.IsActive,
			"role":       model.Role,
			"name":       model.Name,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return internal.NewInternalError("failed to save user", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrConcurrentWrite
	}

	u.Version = model.Version
	return nil
}

// Delete removes the row outright, conditionally on version. The audit trail
// keeps its own copy of what happened to the account.
func (r *UserRepository) Delete(ctx context.Context, id int64, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", id, expectedVersion).
		Delete(&userDatamodel.User{})
	if result.Error != nil {
		return internal.NewInternalError("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrConcurrentWrite
	}
	return nil
}

func (r *UserRepository) Counts(ctx context.Context) (user.Counts, error) {
	var counts user.Counts

	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Count(&counts.Total).Error; err != nil {
		return counts, internal.NewInternalError("failed to count users", err)
	}
	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("is_active = ?", true).Count(&counts.Active).Error; err != nil {
		return counts, internal.NewInternalError("failed to count active users", err)
	}

	counts.Suspended = counts.Total - counts.Active
	return counts, nil
}
