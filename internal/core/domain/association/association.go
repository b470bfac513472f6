package association

import (
	"time"

	"github.com/frahmantamala/camp-management/internal"
)

// Status is the closed set of association states. Revoked is terminal and
// distinct from rejected: a revoked association keeps its record, with the
// approval removed, and offers no further actions.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusRevoked  Status = "revoked"
)

func (s Status) String() string {
	return string(s)
}

// CampEventAssociation is the domain model for a camp's request to take part
// in an event. One association per (camp, event) pair.
type CampEventAssociation struct {
	ID          int64      `json:"id"`
	CampID      int64      `json:"camp_id"`
	EventID     int64      `json:"event_id"`
	Status      Status     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	Reason      *string    `json:"reason,omitempty"`
	Version     int64      `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CanBeRevoked reports whether revoke is legal from the current state. Only
// approved associations can be revoked; any other state fails as an
// unsupported transition since revoke is a named action, not a generic
// status write.
func (a *CampEventAssociation) CanBeRevoked() error {
	if a.Status != StatusApproved {
		return internal.ErrUnsupportedAction
	}
	return nil
}

func (a *CampEventAssociation) CanCancelRejection() error {
	if a.Status != StatusRejected {
		return internal.ErrUnsupportedAction
	}
	return nil
}

// Revoke ends an approved association. The approval timestamp is cleared and
// the reason recorded; the record itself is kept so the pair cannot silently
// re-request.
func (a *CampEventAssociation) Revoke(reason string) {
	a.Status = StatusRevoked
	a.ApprovedAt = nil
	a.Reason = &reason
	a.UpdatedAt = time.Now()
}

// CancelRejection reverts a rejected association to pending and clears the
// stored rejection reason.
func (a *CampEventAssociation) CancelRejection() {
	a.Status = StatusPending
	a.Reason = nil
	a.UpdatedAt = time.Now()
}
