package domain

import "time"

// Account user types.
const (
	UserTypeCoach  = "coach"
	UserTypePlayer = "player"
)

// Account is a login credential owned by the identity provider, keyed by
// email. It is independent of the coach and player rows: a player row exists
// before its account does (the invite flow creates the account later).
type Account struct {
	ID           string
	Email        string
	PasswordHash string // argon2id encoded
	UserType     string // "coach" or "player"
	FullName     string
	CreatedAt    time.Time
	LastLogin    *time.Time
}
