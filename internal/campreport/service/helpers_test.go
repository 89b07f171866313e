package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/identity"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store/drivers/sqlite"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/cryptox"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/idx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
)

type testEnv struct {
	store   *sqlite.Store
	auth    *AuthService
	invites *InviteService
	roster  *RosterService
	reports *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.txt"))

	st, err := sqlite.NewStore(filepath.Join(dir, "campreport.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	idp := identity.NewService(st)

	signer, err := jwtx.NewEphemeralSigner(idx.New().String())
	require.NoError(t, err)

	return &testEnv{
		store: st,
		auth: &AuthService{
			Store:    st,
			Identity: idp,
			Signer:   signer,
			Issuer:   "campreport-test",
		},
		invites: &InviteService{
			Store:    st,
			Identity: idp,
			BaseURL:  "https://camp.example.test",
		},
		roster:  &RosterService{Store: st},
		reports: &ReportService{Store: st},
	}
}

// signUpCoach registers a coach and returns their session.
func (e *testEnv) signUpCoach(t *testing.T, email string) Session {
	t.Helper()

	session, err := e.auth.SignUpCoach(context.Background(), email, "coachpass", "Sam Coach")
	require.NoError(t, err)
	return session
}

// addPlayer puts a player on the coach's roster.
func (e *testEnv) addPlayer(t *testing.T, coachID, name string) domain.Player {
	t.Helper()

	player, err := e.roster.AddPlayer(context.Background(), coachID, PlayerParams{
		Name:     name,
		Position: "Forward",
	})
	require.NoError(t, err)
	return player
}

// expireInvite rewinds an invite so it looks issued more than its validity
// window ago.
func (e *testEnv) expireInvite(t *testing.T, inv domain.Invite, age time.Duration) domain.Invite {
	t.Helper()

	ctx := context.Background()
	past := time.Now().UTC().Add(-age)
	expired := inv
	expired.ID = idx.New().String()
	expired.Code = ""
	code, err := e.store.Invites().GenerateCode(ctx)
	require.NoError(t, err)
	expired.Code = code
	expired.CreatedAt = past
	expired.ExpiresAt = past.Add(DefaultInviteValidity)
	require.NoError(t, e.store.Invites().CreateInvite(ctx, expired))
	return expired
}
