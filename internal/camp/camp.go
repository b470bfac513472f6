package camp

import (
	"time"

	campDatamodel "github.com/frahmantamala/camp-management/internal/core/datamodel/camp"
)

// Camp is reference data: associations point at camps, but the workflow never
// mutates them.
type Camp struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromDataModel(m *campDatamodel.Camp) *Camp {
	return &Camp{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func FromDataModelSlice(models []*campDatamodel.Camp) []*Camp {
	result := make([]*Camp, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
