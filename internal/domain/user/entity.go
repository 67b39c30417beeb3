package user

import (
	"github.com/google/uuid"
)

// Actor is the authenticated caller. Users themselves are managed by the
// extranet's identity provider; the ledger only sees the token claims.
type Actor struct {
	id   uuid.UUID
	role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{id: id, role: role}
}

func (a Actor) ID() uuid.UUID { return a.id }
func (a Actor) Role() Role    { return a.role }

func (a Actor) IsAdmin() bool {
	return a.role.AtLeast(RoleAdmin)
}

// CanCancel reports whether the actor may cancel a reservation made by requesterID.
func (a Actor) CanCancel(requesterID uuid.UUID) error {
	if a.id == requesterID || a.IsAdmin() {
		return nil
	}
	return ErrNotOwner
}
