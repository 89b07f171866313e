package campreport_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoachSignupAndLogin(t *testing.T) {
	client := setupService(t)

	session := signUpCoach(t, client)
	require.Equal(t, "coach", session.Scope())

	t.Run("profile shows the default team", func(t *testing.T) {
		profile, err := session.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, coachEmail, profile.Email)
		require.Equal(t, coachName, profile.FullName)
		require.Equal(t, "My Team", profile.TeamName)
	})

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		_, err := client.SignUpCoach(t.Context(), coachEmail, coachPassword, coachName)
		requireAPIError(t, err, http.StatusConflict)
	})

	t.Run("login round trip", func(t *testing.T) {
		again, err := client.LoginCoach(t.Context(), coachEmail, coachPassword)
		require.NoError(t, err)
		require.Equal(t, "coach", again.Scope())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.LoginCoach(t.Context(), coachEmail, "nope-wrong")
		requireAPIError(t, err, http.StatusUnauthorized)
	})
}

func TestPlayerLoginRequiresRoster(t *testing.T) {
	client := setupService(t)
	signUpCoach(t, client)

	// A coach credential is valid but carries no roster entry
	_, err := client.LoginPlayer(t.Context(), coachEmail, coachPassword)
	apiErr := requireAPIError(t, err, http.StatusForbidden)
	require.Contains(t, apiErr.Description, "not associated with any player")
}

func TestAuthRequiredOnProtectedEndpoints(t *testing.T) {
	client := setupService(t)

	// No token at all
	resp, err := client.HTTPClient.Get(client.BaseURL + "/v1/players")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A player token cannot use coach endpoints
	coach := signUpCoach(t, client)
	player := addPlayer(t, coach, "Alex Morgan", "Forward")
	issued, err := coach.IssueInvite(t.Context(), player.ID, "alex@example.test")
	require.NoError(t, err)
	playerSession, err := client.AcceptInvite(t.Context(), issued.Code, "secret123", "secret123")
	require.NoError(t, err)

	_, err = playerSession.ListPlayers(t.Context())
	require.Error(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	client := setupService(t)

	livez, err := client.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", livez.Status)
	require.NotEmpty(t, livez.Version)

	readyz, err := client.Readyz(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", readyz.Status)
	require.NotNil(t, readyz.Checks)
	require.Equal(t, "ok", readyz.Checks.Database)
	require.Equal(t, "ok", readyz.Checks.Signer)
}
