package store

import (
	"context"
	"errors"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Accounts() Accounts
	Coaches() Coaches
	Players() Players
	Invites() Invites
	Reports() Reports

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle multi-step writes (invite
	// issuance, invite acceptance) that must appear atomic to observers.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new login credential (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByEmail is used during login and conflict checks.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// SetAccountLastLogin stamps last_login on successful authentication.
	SetAccountLastLogin(ctx context.Context, accountID string, at time.Time) error
}

type Coaches interface {
	// CreateCoach inserts a new coach profile.
	CreateCoach(ctx context.Context, c domain.Coach) error

	// GetCoachByID fetches a coach by id.
	GetCoachByID(ctx context.Context, id string) (domain.Coach, error)

	// GetCoachByEmail resolves the coach profile for an authenticated email.
	GetCoachByEmail(ctx context.Context, email string) (domain.Coach, error)
}

type Players interface {
	// CreatePlayer inserts a new roster entry.
	CreatePlayer(ctx context.Context, p domain.Player) error

	// GetPlayerByID fetches a player by id.
	GetPlayerByID(ctx context.Context, id string) (domain.Player, error)

	// GetPlayerByEmail resolves the roster entry for a portal login.
	GetPlayerByEmail(ctx context.Context, email string) (domain.Player, error)

	// ListPlayersByCoach returns a coach's roster ordered by name.
	ListPlayersByCoach(ctx context.Context, coachID string) ([]domain.Player, error)

	// UpdatePlayer mutates name, position, age and jersey number.
	UpdatePlayer(ctx context.Context, p domain.Player) error

	// SetPlayerInvited records the invite side effects on the roster row:
	// email and invite_sent=true.
	SetPlayerInvited(ctx context.Context, playerID, email string, at time.Time) error

	// SetPlayerLastLogin stamps last_login (portal login and invite acceptance).
	SetPlayerLastLogin(ctx context.Context, playerID string, at time.Time) error

	// DeletePlayer cascades to reports and invites (per schema).
	DeletePlayer(ctx context.Context, playerID string) error
}

type Invites interface {
	// GenerateCode returns a fresh invite code that is unique across all
	// invites ever issued. The unique index on invite_code is the backstop.
	GenerateCode(ctx context.Context) (string, error)

	// CreateInvite writes a new invite row.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetUsableInviteByCode returns an invite that exists, has not expired
	// and has not been accepted. All three failure causes collapse into
	// ErrNotFound.
	GetUsableInviteByCode(ctx context.Context, code string, now time.Time) (domain.Invite, error)

	// GetUsableInviteDetails is GetUsableInviteByCode plus the denormalized
	// player and coach display snapshot.
	GetUsableInviteDetails(ctx context.Context, code string, now time.Time) (domain.InviteDetails, error)

	// MarkInviteAccepted sets accepted_at, guarded so it can only happen
	// once per invite. Returns ErrNotFound if the invite is already accepted.
	MarkInviteAccepted(ctx context.Context, inviteID string, at time.Time) error

	// ListInvitesByPlayer returns every invite ever issued for a player,
	// newest first. Invites are retained for audit and never deleted here.
	ListInvitesByPlayer(ctx context.Context, playerID string) ([]domain.Invite, error)
}

type Reports interface {
	// CreateReport inserts a new skill report.
	CreateReport(ctx context.Context, r domain.Report) error

	// ListRecentReportsByCoach returns the newest reports for a coach's
	// dashboard, joined with the player name.
	ListRecentReportsByCoach(ctx context.Context, coachID string, limit int) ([]domain.Report, error)

	// ListReportsByPlayer returns all reports for a player, newest first,
	// joined with the player name.
	ListReportsByPlayer(ctx context.Context, playerID string) ([]domain.Report, error)
}
