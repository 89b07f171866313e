package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/slogx"
)

var ErrPlayerNameRequired = errors.New("player name is required")

// RosterService manages a coach's player roster. Every operation is scoped
// to the calling coach; a player id belonging to another coach behaves as if
// it does not exist.
type RosterService struct {
	Store store.Store
}

// PlayerParams carries the coach-editable roster fields.
type PlayerParams struct {
	Name         string
	Position     string
	Age          *int
	JerseyNumber *int
}

func (s *RosterService) AddPlayer(ctx context.Context, coachID string, params PlayerParams) (domain.Player, error) {
	log := slogx.FromContext(ctx)

	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return domain.Player{}, ErrPlayerNameRequired
	}

	now := time.Now().UTC()
	player := domain.Player{
		ID:           idx.New().String(),
		CoachID:      coachID,
		Name:         params.Name,
		Position:     strings.TrimSpace(params.Position),
		Age:          params.Age,
		JerseyNumber: params.JerseyNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Players().CreatePlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}

	log.Info("player added", slog.String("player_id", player.ID))
	return player, nil
}

func (s *RosterService) ListPlayers(ctx context.Context, coachID string) ([]domain.Player, error) {
	return s.Store.Players().ListPlayersByCoach(ctx, coachID)
}

func (s *RosterService) GetPlayer(ctx context.Context, coachID, playerID string) (domain.Player, error) {
	player, err := s.Store.Players().GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Player{}, ErrPlayerNotFound
		}
		return domain.Player{}, err
	}
	if player.CoachID != coachID {
		return domain.Player{}, ErrPlayerNotFound
	}
	return player, nil
}

func (s *RosterService) UpdatePlayer(ctx context.Context, coachID, playerID string, params PlayerParams) (domain.Player, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return domain.Player{}, ErrPlayerNameRequired
	}

	player, err := s.GetPlayer(ctx, coachID, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	player.Name = params.Name
	player.Position = strings.TrimSpace(params.Position)
	player.Age = params.Age
	player.JerseyNumber = params.JerseyNumber
	player.UpdatedAt = time.Now().UTC()

	if err := s.Store.Players().UpdatePlayer(ctx, player); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Player{}, ErrPlayerNotFound
		}
		return domain.Player{}, err
	}
	return player, nil
}

// DeletePlayer removes a roster entry. Reports and invites for the player go
// with it via the schema's cascading deletes.
func (s *RosterService) DeletePlayer(ctx context.Context, coachID, playerID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.GetPlayer(ctx, coachID, playerID); err != nil {
		return err
	}

	if err := s.Store.Players().DeletePlayer(ctx, playerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	log.Info("player deleted", slog.String("player_id", playerID))
	return nil
}
