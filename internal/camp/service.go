package camp

import (
	"context"
	"log/slog"

	campDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/camp"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*campDatamodel.Camp, error)
	GetByID(ctx context.Context, id int64) (*campDatamodel.Camp, error)
	NamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
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

func (s *Service) GetAllCamps(ctx context.Context) ([]*Camp, error) {
	models, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get camps from repository", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) GetCamp(ctx context.Context, id int64) (*Camp, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, nil
	}
	return FromDataModel(model), nil
}

// NamesByID resolves camp IDs to display names for response enrichment.
// Missing IDs are simply absent from the map.
func (s *Service) NamesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	return s.repo.NamesByID(ctx, ids)
}
