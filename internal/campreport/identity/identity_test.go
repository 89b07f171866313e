package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/domain"
	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store/drivers/sqlite"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/cryptox"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dir := t.TempDir()
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.txt"))

	st, err := sqlite.NewStore(filepath.Join(dir, "campreport.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return NewService(st)
}

func TestCreateAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	meta := Metadata{FullName: "Sam Coach", UserType: domain.UserTypeCoach}

	t.Run("creates with hashed password", func(t *testing.T) {
		account, err := svc.CreateAccount(ctx, "sam@example.test", "hunter22", meta)
		require.NoError(t, err)
		require.NotEmpty(t, account.ID)
		require.Equal(t, domain.UserTypeCoach, account.UserType)
		require.NotEqual(t, "hunter22", account.PasswordHash)
	})

	t.Run("duplicate email returns ErrEmailTaken", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, "sam@example.test", "another", meta)
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "alex@example.test", "secret123", Metadata{
		FullName: "Alex Morgan",
		UserType: domain.UserTypePlayer,
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "alex@example.test", "secret123")
		require.NoError(t, err)
		require.Equal(t, "Alex Morgan", account.FullName)
		require.NotNil(t, account.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alex@example.test", "wrong")
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost@example.test", "secret123")
		require.ErrorIs(t, err, ErrBadCredentials)
	})
}
