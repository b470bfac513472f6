package role

import (
	"github.com/frahmantamala/camp-management/internal"
)

// Role is the closed set of access levels the platform knows about. Values
// match what the console sends and what the users table stores.
type Role string

const (
	Member       Role = "member"
	CampManager  Role = "camp manager"
	EventManager Role = "event manager"
	SiteAdmin    Role = "site admin"
	GlobalAdmin  Role = "global admin"
)

// rank orders roles by privilege. Camp manager and event manager are
// siblings with disjoint scopes, so they share a rank.
var rank = map[Role]int{
	Member:       0,
	CampManager:  1,
	EventManager: 1,
	SiteAdmin:    2,
	GlobalAdmin:  3,
}

// All lists every valid role, highest privilege first.
func All() []Role {
	return []Role{GlobalAdmin, SiteAdmin, EventManager, CampManager, Member}
}

// Parse rejects unknown role strings at the boundary.
func Parse(s string) (Role, error) {
	r := Role(s)
	if _, ok := rank[r]; !ok {
		return "", internal.NewValidationError("invalid role: "+s, internal.ErrCodeInvalidRole)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Rank returns the privilege rank of the role. Unknown roles rank below
// member so a corrupt value never grants access.
func (r Role) Rank() int {
	if v, ok := rank[r]; ok {
		return v
	}
	return -1
}

// IsAdmin reports whether the role carries site-wide administrative
// privileges (site admin or global admin).
func (r Role) IsAdmin() bool {
	return r == SiteAdmin || r == GlobalAdmin
}

func (r Role) IsGlobalAdmin() bool {
	return r == GlobalAdmin
}

// AtLeast reports whether the role's privilege is equal to or above other's.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() >= other.Rank()
}

func (r Role) String() string {
	return string(r)
}
