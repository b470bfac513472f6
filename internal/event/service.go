package event

import (
	"context"
	"log/slog"

	eventDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/event"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*eventDatamodel.Event, error)
	List(ctx context.Context, filter ListFilter) ([]*eventDatamodel.Event, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Event, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list events", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Event, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}
