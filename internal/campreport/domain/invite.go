package domain

import "time"

// Invite is a single-use, time-limited code linking a Player to an email
// address. Invite rows are never deleted; accepted and expired invites are
// kept as an audit trail.
//
// Lifecycle: Issued -> Usable while now < ExpiresAt and AcceptedAt is nil;
// -> Accepted once redeemed; -> Expired once past ExpiresAt. Accepted and
// Expired are terminal.
type Invite struct {
	ID         string
	PlayerID   string
	CoachID    string
	Email      string
	Code       string // opaque, globally unique, unguessable
	CreatedAt  time.Time
	ExpiresAt  time.Time
	AcceptedAt *time.Time
}

// Usable reports whether the invite can still be redeemed at the given time.
func (i Invite) Usable(now time.Time) bool {
	return now.Before(i.ExpiresAt) && i.AcceptedAt == nil
}

// InviteDetails is the read-only snapshot shown to an invited player before
// they create an account: the invite plus denormalized player and coach
// display fields.
type InviteDetails struct {
	Invite

	PlayerName     string
	PlayerPosition string
	CoachName      string
	TeamName       string
}
