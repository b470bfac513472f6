package association

import (
	"time"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/core/common/validation"
)

// RevokeDTO carries the revoke request body. The reason is mandatory and must
// not be blank.
type RevokeDTO struct {
	Reason string `json:"reason"`
}

func (dto RevokeDTO) Validate() error {
	if !validation.NonBlank(dto.Reason) {
		return internal.ErrReasonRequired
	}
	return nil
}

// ListFilter narrows association listings. Zero values mean no filtering.
type ListFilter struct {
	Status  string
	CampID  int64
	EventID int64
}

// Detailed is an association enriched with the names the console displays
// alongside it.
type Detailed struct {
	CampEventAssociation
	CampName   string `json:"camp_name"`
	EventTitle string `json:"event_title"`
}

// NewRequest builds a fresh pending association for a (camp, event) pair.
type NewRequest struct {
	CampID  int64 `json:"camp_id"`
	EventID int64 `json:"event_id"`
}

func (r NewRequest) Validate() error {
	if r.CampID <= 0 || r.EventID <= 0 {
		return internal.NewValidationError("camp_id and event_id are required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func FromRequest(r NewRequest) *CampEventAssociation {
	now := time.Now()
	return &CampEventAssociation{
		CampID:      r.CampID,
		EventID:     r.EventID,
		Status:      StatusPending,
		RequestedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
