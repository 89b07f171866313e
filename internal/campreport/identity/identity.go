// Package identity owns login credentials. Services go through the Provider
// interface so the credential backend can be swapped without touching the
// invite or roster logic.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/cryptox"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
)

var (
	ErrEmailTaken     = errors.New("identity: email already registered")
	ErrBadCredentials = errors.New("identity: invalid email or password")
)

// Metadata travels with account creation and records who the account is for.
type Metadata struct {
	FullName string
	UserType string
}

// Provider creates and authenticates accounts.
type Provider interface {
	// CreateAccount registers a new credential. Returns ErrEmailTaken when
	// the email is already registered.
	CreateAccount(ctx context.Context, email, password string, meta Metadata) (domain.Account, error)

	// Authenticate verifies an email/password pair. Returns
	// ErrBadCredentials for unknown emails and wrong passwords alike.
	Authenticate(ctx context.Context, email, password string) (domain.Account, error)
}

// Service is the store-backed Provider. Passwords are hashed with argon2id
// before they reach the database.
type Service struct {
	Store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{Store: st}
}

func (s *Service) CreateAccount(ctx context.Context, email, password string, meta Metadata) (domain.Account, error) {
	// 1. Hash the password before anything touches the store
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		UserType:     meta.UserType,
		FullName:     meta.FullName,
		CreatedAt:    time.Now().UTC(),
	}

	// 2. Insert, translating the unique-email violation
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, err
	}

	return account, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	// 1. Look up the account
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrBadCredentials
		}
		return domain.Account{}, err
	}

	// 2. Verify the password against the stored hash
	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		return domain.Account{}, ErrBadCredentials
	}

	// 3. Stamp last_login; a failure here should not fail the login
	now := time.Now().UTC()
	if err := s.Store.Accounts().SetAccountLastLogin(ctx, account.ID, now); err == nil {
		account.LastLogin = &now
	}

	return account, nil
}
