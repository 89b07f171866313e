package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/identity"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/cryptox"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

const (
	// DefaultInviteValidity is how long an invite link stays usable.
	DefaultInviteValidity = 7 * 24 * time.Hour

	// MinPasswordLength applies when a player sets their password during
	// invite acceptance.
	MinPasswordLength = 6
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrInviteNotFound   = errors.New("invalid or expired invite code")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrAccountExists    = errors.New("an account already exists for this email")
)

// InviteService drives the invite lifecycle: a coach issues an invite for a
// roster player, the player validates the code from the emailed link, and
// finally accepts it to create their portal login.
type InviteService struct {
	Store    store.Store
	Identity identity.Provider

	// BaseURL is the public origin the join link is built on.
	BaseURL string

	// Validity is how long a freshly issued invite stays usable.
	// Zero means DefaultInviteValidity.
	Validity time.Duration
}

func (s *InviteService) validity() time.Duration {
	if s.Validity > 0 {
		return s.Validity
	}
	return DefaultInviteValidity
}

// IssuedInvite is what the coach gets back: the stored invite plus the link
// to send to the player.
type IssuedInvite struct {
	Invite domain.Invite
	Link   string
}

// PlayerAccount pairs the freshly created login with the roster entry it
// belongs to.
type PlayerAccount struct {
	Account domain.Account
	Player  domain.Player
}

// IssueInvite mints a fresh invite for one of the coach's players. Issuing
// again for the same player is always allowed; older invites stay in the
// table untouched and simply age out.
func (s *InviteService) IssueInvite(ctx context.Context, coachID, playerID, email string) (IssuedInvite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return IssuedInvite{}, ErrEmailRequired
	}

	// 2. The player must exist and belong to the issuing coach
	player, err := s.Store.Players().GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return IssuedInvite{}, ErrPlayerNotFound
		}
		return IssuedInvite{}, err
	}
	if player.CoachID != coachID {
		return IssuedInvite{}, ErrPlayerNotFound
	}

	// 3. Mint a code unique across every invite ever issued
	code, err := s.Store.Invites().GenerateCode(ctx)
	if err != nil {
		return IssuedInvite{}, err
	}

	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        idx.New().String(),
		PlayerID:  player.ID,
		CoachID:   coachID,
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity()),
	}

	// 4. Write the invite and the roster side effects atomically so a
	// failed insert never leaves the player flagged as invited
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().CreateInvite(ctx, invite); err != nil {
			return err
		}
		return tx.Players().SetPlayerInvited(ctx, player.ID, email, now)
	})
	if err != nil {
		return IssuedInvite{}, err
	}

	log.Info("invite issued",
		slog.String("player_id", player.ID),
		slog.String("code_fp", cryptox.FingerprintToken(code)),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	return IssuedInvite{
		Invite: invite,
		Link:   s.InviteLink(code),
	}, nil
}

// InviteLink builds the join URL a player receives by email.
func (s *InviteService) InviteLink(code string) string {
	return fmt.Sprintf("%s/player/join?code=%s", strings.TrimRight(s.BaseURL, "/"), code)
}

// ValidateInvite resolves an invite code into the display snapshot shown on
// the join page. An unknown, expired or already accepted code all come back
// as ErrInviteNotFound; the caller cannot tell which, and that is deliberate.
func (s *InviteService) ValidateInvite(ctx context.Context, code string) (domain.InviteDetails, error) {
	details, err := s.Store.Invites().GetUsableInviteDetails(ctx, code, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteDetails{}, ErrInviteNotFound
		}
		return domain.InviteDetails{}, err
	}
	return details, nil
}

// AcceptInvite consumes an invite: the player picks a password, gets a login
// account, and the invite is burned so it can never be used again.
//
// Validation happens before any write. The account creation sits outside the
// store transaction, so a crash between the two can leave an account with an
// unconsumed invite; the invite remains usable and a retry reconciles via
// ErrAccountExists.
func (s *InviteService) AcceptInvite(ctx context.Context, code, password, confirm string) (PlayerAccount, error) {
	log := slogx.FromContext(ctx)

	// 1. Password checks first, before touching the store
	if password != confirm {
		return PlayerAccount{}, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return PlayerAccount{}, ErrPasswordTooShort
	}

	// 2. The code must resolve to a usable invite
	now := time.Now().UTC()
	invite, err := s.Store.Invites().GetUsableInviteByCode(ctx, code, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PlayerAccount{}, ErrInviteNotFound
		}
		return PlayerAccount{}, err
	}

	player, err := s.Store.Players().GetPlayerByID(ctx, invite.PlayerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PlayerAccount{}, ErrInviteNotFound
		}
		return PlayerAccount{}, err
	}

	// 3. Create the login credential
	account, err := s.Identity.CreateAccount(ctx, invite.Email, password, identity.Metadata{
		FullName: player.Name,
		UserType: domain.UserTypePlayer,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return PlayerAccount{}, ErrAccountExists
		}
		return PlayerAccount{}, err
	}

	// 4. Burn the invite and stamp the roster row together. The guarded
	// update makes acceptance at-most-once even when two requests race.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invites().MarkInviteAccepted(ctx, invite.ID, now); err != nil {
			return err
		}
		return tx.Players().SetPlayerLastLogin(ctx, player.ID, now)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PlayerAccount{}, ErrInviteNotFound
		}
		return PlayerAccount{}, err
	}

	log.Info("invite accepted",
		slog.String("player_id", player.ID),
		slog.String("code_fp", cryptox.FingerprintToken(code)),
	)

	return PlayerAccount{Account: account, Player: player}, nil
}

// ListInviteHistory returns every invite ever issued for a player, newest
// first. The coach must own the player.
func (s *InviteService) ListInviteHistory(ctx context.Context, coachID, playerID string) ([]domain.Invite, error) {
	player, err := s.Store.Players().GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.CoachID != coachID {
		return nil, ErrPlayerNotFound
	}
	return s.Store.Invites().ListInvitesByPlayer(ctx, playerID)
}
