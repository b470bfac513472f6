package association

import (
	associationDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/association"
	domain "github.com/frahmantamala/camp-management/internal/core/domain/association"
)

// The domain model lives in internal/core/domain/association so the workflow
// engine can depend on it without importing this package (which imports
// workflow for its handler). The aliases keep this package's API unchanged.
type (
	Status               = domain.Status
	CampEventAssociation = domain.CampEventAssociation
)

const (
	StatusPending  = domain.StatusPending
	StatusApproved = domain.StatusApproved
	StatusRejected = domain.StatusRejected
	StatusRevoked  = domain.StatusRevoked
)

func ToDataModel(a *CampEventAssociation) *associationDatamodel.CampEventAssociation {
	return &associationDatamodel.CampEventAssociation{
		ID:          a.ID,
		CampID:      a.CampID,
		EventID:     a.EventID,
		Status:      string(a.Status),
		RequestedAt: a.RequestedAt,
		ApprovedAt:  a.ApprovedAt,
		Reason:      a.Reason,
		Version:     a.Version,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func FromDataModel(m *associationDatamodel.CampEventAssociation) *CampEventAssociation {
	return &CampEventAssociation{
		ID:          m.ID,
		CampID:      m.CampID,
		EventID:     m.EventID,
		Status:      Status(m.Status),
		RequestedAt: m.RequestedAt,
		ApprovedAt:  m.ApprovedAt,
		Reason:      m.Reason,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*associationDatamodel.CampEventAssociation) []*CampEventAssociation {
	result := make([]*CampEventAssociation, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
