package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/auth"
	"github.com/frahmantamala/camp-management/internal/role"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(ctx context.Context, email string) (*auth.Credentials, error) {
	var creds auth.Credentials
	var roleStr string

	query := `SELECT id, email, password_hash, role, is_active FROM users WHERE email = ?`
	row := r.db.WithContext(ctx).Raw(query, email).Row()
	if err := row.Scan(&creds.UserID, &creds.Email, &creds.PasswordHash, &roleStr, &creds.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	creds.Role = role.Role(roleStr)
	return &creds, nil
}

// GetActor returns the identity for an active account only; suspended
// accounts cannot act even with a still-valid token.
func (r *Repository) GetActor(ctx context.Context, userID int64) (*auth.Actor, error) {
	var actor auth.Actor
	var roleStr string

	query := `SELECT id, email, role FROM users WHERE id = ? AND is_active = true`
	row := r.db.WithContext(ctx).Raw(query, userID).Row()
	if err := row.Scan(&actor.ID, &actor.Email, &roleStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	actor.Role = role.Role(roleStr)
	return &actor, nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE users SET last_login = ? WHERE id = ?`, time.Now(), userID).Error
}
