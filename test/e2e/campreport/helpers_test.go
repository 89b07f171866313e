package campreport_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/app"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
)

/*
 * End-to-end tests for the camp report service. The full application is
 * wired up in-process and exercised over HTTP through the SDK.
 */

const (
	coachEmail    = "coach@example.test"
	coachPassword = "coachpass1"
	coachName     = "Sam Coach"
)

// TestMain raises the rate limits so rapid test requests don't trip the
// production profiles.
func TestMain(m *testing.M) {
	generous := httpx.RateLimitConfig{
		RequestsPerWindow: 10000,
		Window:            time.Minute,
		Burst:             10000,
	}
	httpx.StrictLimit = generous
	httpx.ModerateLimit = generous
	httpx.LenientLimit = generous

	os.Exit(m.Run())
}

// setupService starts the full application on an ephemeral port and returns
// an SDK client against it.
func setupService(t *testing.T) *campsdk.SDKClient {
	t.Helper()

	dir := t.TempDir()
	application, err := app.New(app.Config{
		BaseURL:             "https://camp.example.test",
		Issuer:              "campreport-e2e",
		DatabaseFile:        filepath.Join(dir, "campreport.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		InviteValidity:      7 * 24 * time.Hour,
		Env:                 "test",
		LogLevel:            "warn",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)

	server := httptest.NewServer(application.Handler())
	t.Cleanup(server.Close)

	return campsdk.NewSDKClient(server.URL)
}

// signUpCoach registers the default test coach.
func signUpCoach(t *testing.T, client *campsdk.SDKClient) *campsdk.Session {
	t.Helper()

	session, err := client.SignUpCoach(context.Background(), coachEmail, coachPassword, coachName)
	require.NoError(t, err)
	return session
}

// addPlayer creates a roster entry for the coach.
func addPlayer(t *testing.T, session *campsdk.Session, name, position string) *campsdk.Player {
	t.Helper()

	player, err := session.AddPlayer(context.Background(), campsdk.PlayerRequest{
		Name:     name,
		Position: position,
	})
	require.NoError(t, err)
	return player
}

// requireAPIError asserts err is an *campsdk.APIError with the given status.
func requireAPIError(t *testing.T, err error, statusCode int) *campsdk.APIError {
	t.Helper()

	require.Error(t, err)
	apiErr, ok := err.(*campsdk.APIError)
	require.True(t, ok, "expected *campsdk.APIError, got %T: %v", err, err)
	require.Equal(t, statusCode, apiErr.StatusCode)
	return apiErr
}
