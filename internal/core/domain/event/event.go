package event

import (
	"fmt"
	"time"

	"github.com/frahmantamala/camp-management/internal"
)

// Status is the closed set of event lifecycle states. Unknown values are
// rejected at the boundary by ParseStatus.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), nil
	}
	return "", internal.NewValidationError(
		fmt.Sprintf("invalid event status: %q", s), internal.ErrCodeInvalidStatus)
}

func (s Status) String() string {
	return string(s)
}

// Event is the domain model for an event moving through the admin-controlled
// lifecycle.
type Event struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Location        string     `json:"location"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	CreatorID       int64      `json:"creator_id"`
	Status          Status     `json:"status"`
	StatusReason    *string    `json:"status_reason,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
	Version         int64      `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CanTransitionTo reports whether an admin override to the requested status
// is legal. Every pair of distinct statuses is legal; the identity transition
// is not.
func (e *Event) CanTransitionTo(requested Status) error {
	if e.Status == requested {
		return internal.ErrNoOpTransition
	}
	return nil
}

// SetStatus applies the override in memory, stamping the change time and
// storing the reason as given. An empty reason is stored as empty, not
// dropped.
func (e *Event) SetStatus(requested Status, reason string) {
	now := time.Now()
	e.Status = requested
	e.StatusReason = &reason
	e.StatusChangedAt = &now
	e.UpdatedAt = now
}
