package domain

import "time"

// Player is a roster entry owned by exactly one Coach. Email is set as a
// side effect of issuing an invite, not at roster creation.
type Player struct {
	ID           string
	CoachID      string
	Name         string
	Position     string
	Age          *int
	JerseyNumber *int
	Email        string // empty until an invite has been issued
	InviteSent   bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
