package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/camp-management/internal/auth"
	userDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/user"
	"github.com/frahmantamala/camp-management/internal/core/events"
	"github.com/frahmantamala/camp-management/internal/role"
)

type RepositoryAPI interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Authorizer interface {
	Authorize(actor auth.Actor, action auth.Action, target auth.Target) error
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	gate   Authorizer
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, gate Authorizer, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		gate:   gate,
		bus:    bus,
		logger: logger,
	}
}

// Create provisions an account on an admin's behalf. The account starts
// active; there is no verification step for admin-created users.
func (s *Service) Create(ctx context.Context, actor auth.Actor, dto CreateUserDTO) (*User, error) {
	if err := s.gate.Authorize(actor, auth.ActionCreateUser, auth.Target{Type: auth.TargetUser}); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	userRole, err := role.Parse(dto.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := NewUser(dto, hash, userRole)
	model := ToDataModel(u)
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, err
	}
	u.ID = model.ID
	u.Version = model.Version

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role.String(), "created_by", actor.ID)

	if s.bus != nil {
		evt := events.NewUserCreatedEvent(actor.ID, u.ID, u.Email, u.Role.String())
		if err := s.bus.Publish(ctx, evt); err != nil {
			s.logger.Warn("failed to publish user created event", "error", err)
		}
	}

	return u, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}
