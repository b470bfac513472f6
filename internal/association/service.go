package association

import (
	"context"
	"log/slog"

	associationDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/association"
)

type RepositoryAPI interface {
	Create(ctx context.Context, a *associationDatamodel.CampEventAssociation) error
	GetByID(ctx context.Context, id int64) (*associationDatamodel.CampEventAssociation, error)
	List(ctx context.Context, filter ListFilter) ([]*associationDatamodel.CampEventAssociation, error)
}

// CampNamer resolves camp IDs to display names.
type CampNamer interface {
	NamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}

// EventTitler resolves event IDs to display titles.
type EventTitler interface {
	TitlesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo   RepositoryAPI
	camps  CampNamer
	events EventTitler
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, camps CampNamer, events EventTitler, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		camps:  camps,
		events: events,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, req NewRequest) (*CampEventAssociation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := FromRequest(req)
	model := ToDataModel(a)
	model.Version = 1
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, err
	}
	a.ID = model.ID
	a.Version = model.Version

	s.logger.Info("association requested", "camp_id", a.CampID, "event_id", a.EventID)
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*CampEventAssociation, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(model), nil
}

// ListDetailed returns associations enriched with the camp name and event
// title the console shows next to each row. Lookups that fail to resolve
// leave the name blank rather than failing the listing.
func (s *Service) ListDetailed(ctx context.Context, filter ListFilter) ([]*Detailed, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list associations", "error", err)
		return nil, err
	}

	associations := FromDataModelSlice(models)

	campIDs := make([]int64, 0, len(associations))
	eventIDs := make([]int64, 0, len(associations))
	for _, a := range associations {
		campIDs = append(campIDs, a.CampID)
		eventIDs = append(eventIDs, a.EventID)
	}

	campNames, err := s.camps.NamesByID(ctx, campIDs)
	if err != nil {
		s.logger.Warn("failed to resolve camp names", "error", err)
		campNames = map[int64]string{}
	}

	eventTitles, err := s.events.TitlesByID(ctx, eventIDs)
	if err != nil {
		s.logger.Warn("failed to resolve event titles", "error", err)
		eventTitles = map[int64]string{}
	}

	detailed := make([]*Detailed, len(associations))
	for i, a := range associations {
		detailed[i] = &Detailed{
			CampEventAssociation: *a,
			CampName:             campNames[a.CampID],
			EventTitle:           eventTitles[a.EventID],
		}
	}
	return detailed, nil
}
