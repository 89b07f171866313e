package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/identity"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNotAPlayer     = errors.New("account is not associated with any player")
	ErrNameRequired   = errors.New("full name is required")
)

// Session is an issued access token plus the details clients render.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	Scope       string
	SubjectID   string
	Email       string
	FullName    string
}

// AuthService signs coaches up and logs coaches and players in. Tokens are
// stateless JWTs; the subject is the domain actor (coach or player id), not
// the credential account id.
type AuthService struct {
	Store    store.Store
	Identity identity.Provider
	Signer   jwtx.Signer
	Issuer   string

	// AccessTTL is how long issued sessions last. Zero means
	// jwtx.DefaultSessionTTL.
	AccessTTL time.Duration
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultSessionTTL
}

// SignUpCoach registers a new coach: credential account, coach profile and a
// default team, then logs them straight in.
func (s *AuthService) SignUpCoach(ctx context.Context, email, password, fullName string) (Session, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	fullName = strings.TrimSpace(fullName)
	if email == "" {
		return Session{}, ErrEmailRequired
	}
	if fullName == "" {
		return Session{}, ErrNameRequired
	}
	if len(password) < MinPasswordLength {
		return Session{}, ErrPasswordTooShort
	}

	// 1. Create the login credential
	account, err := s.Identity.CreateAccount(ctx, email, password, identity.Metadata{
		FullName: fullName,
		UserType: domain.UserTypeCoach,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, err
	}

	// 2. Provision the coach profile with the default team
	coach, err := s.provisionCoach(ctx, email, fullName)
	if err != nil {
		return Session{}, err
	}

	log.Info("coach signed up", slog.String("coach_id", coach.ID))

	return s.mintSession(coach.ID, account.Email, coach.FullName, jwtx.ScopeCoach)
}

// LoginCoach authenticates a coach. A coach profile is provisioned on first
// login if the account predates profile rows.
func (s *AuthService) LoginCoach(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))

	account, err := s.Identity.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrBadCredentials) {
			return Session{}, ErrBadCredentials
		}
		return Session{}, err
	}
	if account.UserType != domain.UserTypeCoach {
		return Session{}, ErrBadCredentials
	}

	coach, err := s.Store.Coaches().GetCoachByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		coach, err = s.provisionCoach(ctx, email, account.FullName)
		if err == nil {
			log.Info("coach profile provisioned on login", slog.String("coach_id", coach.ID))
		}
	}
	if err != nil {
		return Session{}, err
	}

	return s.mintSession(coach.ID, account.Email, coach.FullName, jwtx.ScopeCoach)
}

// LoginPlayer authenticates a player for the portal. Beyond the credential
// check, the email must still be attached to a roster row; otherwise the
// login is refused even though the password was right.
func (s *AuthService) LoginPlayer(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))

	account, err := s.Identity.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrBadCredentials) {
			return Session{}, ErrBadCredentials
		}
		return Session{}, err
	}

	player, err := s.Store.Players().GetPlayerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("player login without roster entry", slog.String("email", email))
			return Session{}, ErrNotAPlayer
		}
		return Session{}, err
	}

	now := time.Now().UTC()
	if err := s.Store.Players().SetPlayerLastLogin(ctx, player.ID, now); err != nil {
		log.Warn("failed to stamp player last login", slog.Any("error", err))
	}

	return s.mintSession(player.ID, account.Email, player.Name, jwtx.ScopePlayer)
}

func (s *AuthService) provisionCoach(ctx context.Context, email, fullName string) (domain.Coach, error) {
	now := time.Now().UTC()
	coach := domain.Coach{
		ID:        idx.New().String(),
		Email:     email,
		FullName:  fullName,
		TeamName:  domain.DefaultTeamName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Coaches().CreateCoach(ctx, coach); err != nil {
		// Lost a race with a concurrent login; use the winner's row
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Coaches().GetCoachByEmail(ctx, email)
		}
		return domain.Coach{}, err
	}
	return coach, nil
}

func (s *AuthService) mintSession(subjectID, email, fullName, scope string) (Session, error) {
	ttl := s.accessTTL()
	claims := jwtx.NewSessionClaims(subjectID, email, fullName, []string{scope}, ttl, s.Issuer, time.Now().UTC())

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		Scope:       scope,
		SubjectID:   subjectID,
		Email:       email,
		FullName:    fullName,
	}, nil
}
