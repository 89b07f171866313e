package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbFile := filepath.Join(t.TempDir(), "campreport.db")
	s, err := NewStore(dbFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedCoach(t *testing.T, s *Store) domain.Coach {
	t.Helper()

	now := time.Now().UTC()
	coach := domain.Coach{
		ID:        idx.New().String(),
		Email:     idx.New().String() + "@example.test",
		FullName:  "Test Coach",
		TeamName:  domain.DefaultTeamName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Coaches().CreateCoach(context.Background(), coach))
	return coach
}

func seedPlayer(t *testing.T, s *Store, coachID string) domain.Player {
	t.Helper()

	now := time.Now().UTC()
	player := domain.Player{
		ID:        idx.New().String(),
		CoachID:   coachID,
		Name:      "Alex Morgan",
		Position:  "Forward",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Players().CreatePlayer(context.Background(), player))
	return player
}

func TestMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestAccountsRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        "coach@example.test",
		PasswordHash: "argon2-placeholder",
		UserType:     domain.UserTypeCoach,
		FullName:     "Sam Coach",
		CreatedAt:    now,
	}

	t.Run("create and fetch by email", func(t *testing.T) {
		require.NoError(t, s.Accounts().CreateAccount(ctx, account))

		got, err := s.Accounts().GetAccountByEmail(ctx, account.Email)
		require.NoError(t, err)
		require.Equal(t, account.ID, got.ID)
		require.Equal(t, domain.UserTypeCoach, got.UserType)
		require.Nil(t, got.LastLogin)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		dup := account
		dup.ID = idx.New().String()
		err := s.Accounts().CreateAccount(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown email maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Accounts().GetAccountByEmail(ctx, "nobody@example.test")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("last login stamp", func(t *testing.T) {
		at := now.Add(time.Hour)
		require.NoError(t, s.Accounts().SetAccountLastLogin(ctx, account.ID, at))

		got, err := s.Accounts().GetAccountByEmail(ctx, account.Email)
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
	})
}

func TestPlayersRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	coach := seedCoach(t, s)
	player := seedPlayer(t, s, coach.ID)

	t.Run("fetch by id", func(t *testing.T) {
		got, err := s.Players().GetPlayerByID(ctx, player.ID)
		require.NoError(t, err)
		require.Equal(t, "Alex Morgan", got.Name)
		require.False(t, got.InviteSent)
		require.Nil(t, got.Age)
	})

	t.Run("update mutates roster fields", func(t *testing.T) {
		age := 17
		jersey := 9
		player.Name = "Alex J Morgan"
		player.Age = &age
		player.JerseyNumber = &jersey
		player.UpdatedAt = time.Now().UTC()
		require.NoError(t, s.Players().UpdatePlayer(ctx, player))

		got, err := s.Players().GetPlayerByID(ctx, player.ID)
		require.NoError(t, err)
		require.Equal(t, "Alex J Morgan", got.Name)
		require.NotNil(t, got.Age)
		require.Equal(t, 17, *got.Age)
		require.Equal(t, 9, *got.JerseyNumber)
	})

	t.Run("invited marks email and flag", func(t *testing.T) {
		require.NoError(t, s.Players().SetPlayerInvited(ctx, player.ID, "alex@example.test", time.Now().UTC()))

		got, err := s.Players().GetPlayerByID(ctx, player.ID)
		require.NoError(t, err)
		require.True(t, got.InviteSent)
		require.Equal(t, "alex@example.test", got.Email)
	})

	t.Run("fetch by email", func(t *testing.T) {
		got, err := s.Players().GetPlayerByEmail(ctx, "alex@example.test")
		require.NoError(t, err)
		require.Equal(t, player.ID, got.ID)
	})

	t.Run("list is scoped to the coach", func(t *testing.T) {
		other := seedCoach(t, s)
		seedPlayer(t, s, other.ID)

		list, err := s.Players().ListPlayersByCoach(ctx, coach.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, player.ID, list[0].ID)
	})

	t.Run("update of missing player maps to ErrNotFound", func(t *testing.T) {
		ghost := player
		ghost.ID = idx.New().String()
		require.ErrorIs(t, s.Players().UpdatePlayer(ctx, ghost), store.ErrNotFound)
	})

	t.Run("delete cascades and removes the row", func(t *testing.T) {
		require.NoError(t, s.Players().DeletePlayer(ctx, player.ID))
		_, err := s.Players().GetPlayerByID(ctx, player.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestInvitesRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	coach := seedCoach(t, s)
	player := seedPlayer(t, s, coach.ID)
	now := time.Now().UTC()

	newInvite := func(t *testing.T) domain.Invite {
		code, err := s.Invites().GenerateCode(ctx)
		require.NoError(t, err)
		inv := domain.Invite{
			ID:        idx.New().String(),
			PlayerID:  player.ID,
			CoachID:   coach.ID,
			Email:     "alex@example.test",
			Code:      code,
			CreatedAt: now,
			ExpiresAt: now.Add(7 * 24 * time.Hour),
		}
		require.NoError(t, s.Invites().CreateInvite(ctx, inv))
		return inv
	}

	t.Run("generated codes are long and distinct", func(t *testing.T) {
		a := newInvite(t)
		b := newInvite(t)
		require.GreaterOrEqual(t, len(a.Code), 36)
		require.NotEqual(t, a.Code, b.Code)
	})

	t.Run("duplicate code maps to ErrAlreadyExists", func(t *testing.T) {
		inv := newInvite(t)
		dup := inv
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Invites().CreateInvite(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("usable lookup by code", func(t *testing.T) {
		inv := newInvite(t)

		got, err := s.Invites().GetUsableInviteByCode(ctx, inv.Code, now.Add(time.Hour))
		require.NoError(t, err)
		require.Equal(t, inv.ID, got.ID)
	})

	t.Run("details join player and coach", func(t *testing.T) {
		inv := newInvite(t)

		d, err := s.Invites().GetUsableInviteDetails(ctx, inv.Code, now.Add(time.Hour))
		require.NoError(t, err)
		require.Equal(t, "Alex Morgan", d.PlayerName)
		require.Equal(t, "Forward", d.PlayerPosition)
		require.Equal(t, coach.FullName, d.CoachName)
		require.Equal(t, coach.TeamName, d.TeamName)
	})

	t.Run("unknown code maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Invites().GetUsableInviteByCode(ctx, "no-such-code", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired code maps to ErrNotFound", func(t *testing.T) {
		inv := newInvite(t)
		_, err := s.Invites().GetUsableInviteByCode(ctx, inv.Code, now.Add(8*24*time.Hour))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("accepted code maps to ErrNotFound", func(t *testing.T) {
		inv := newInvite(t)
		require.NoError(t, s.Invites().MarkInviteAccepted(ctx, inv.ID, now.Add(time.Minute)))

		_, err := s.Invites().GetUsableInviteByCode(ctx, inv.Code, now.Add(time.Hour))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("accepting twice maps to ErrNotFound", func(t *testing.T) {
		inv := newInvite(t)
		require.NoError(t, s.Invites().MarkInviteAccepted(ctx, inv.ID, now.Add(time.Minute)))
		require.ErrorIs(t, s.Invites().MarkInviteAccepted(ctx, inv.ID, now.Add(2*time.Minute)), store.ErrNotFound)
	})

	t.Run("history lists all invites newest first", func(t *testing.T) {
		history, err := s.Invites().ListInvitesByPlayer(ctx, player.ID)
		require.NoError(t, err)
		require.NotEmpty(t, history)
	})
}

func TestReportsRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	coach := seedCoach(t, s)
	player := seedPlayer(t, s, coach.ID)

	addReport := func(t *testing.T, createdAt time.Time) domain.Report {
		rep := domain.Report{
			ID:                idx.New().String(),
			PlayerID:          player.ID,
			CoachID:           coach.ID,
			TechnicalSkills:   8,
			PhysicalCondition: 7,
			Teamwork:          9,
			Attitude:          10,
			Strengths:         "Great first touch",
			ReportDate:        createdAt,
			CreatedAt:         createdAt,
		}
		require.NoError(t, s.Reports().CreateReport(ctx, rep))
		return rep
	}

	base := time.Now().UTC()
	for i := range 7 {
		addReport(t, base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("recent list caps at the limit, newest first", func(t *testing.T) {
		list, err := s.Reports().ListRecentReportsByCoach(ctx, coach.ID, 5)
		require.NoError(t, err)
		require.Len(t, list, 5)
		require.Equal(t, "Alex Morgan", list[0].PlayerName)
		require.True(t, !list[0].CreatedAt.Before(list[4].CreatedAt))
	})

	t.Run("player list returns everything", func(t *testing.T) {
		list, err := s.Reports().ListReportsByPlayer(ctx, player.ID)
		require.NoError(t, err)
		require.Len(t, list, 7)
	})

	t.Run("deleting the player removes their reports", func(t *testing.T) {
		require.NoError(t, s.Players().DeletePlayer(ctx, player.ID))

		list, err := s.Reports().ListReportsByPlayer(ctx, player.ID)
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	coach := seedCoach(t, s)

	player := domain.Player{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Name:      "Rollback Target",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Players().CreatePlayer(ctx, player); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Players().GetPlayerByID(ctx, player.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
