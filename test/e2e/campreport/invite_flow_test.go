package campreport_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInviteLifecycle walks the whole journey: a coach signs up, builds a
// roster, invites a player, and the player joins through the emailed link.
func TestInviteLifecycle(t *testing.T) {
	client := setupService(t)
	coach := signUpCoach(t, client)
	player := addPlayer(t, coach, "Alex Morgan", "Forward")

	// Issue the invite
	issued, err := coach.IssueInvite(t.Context(), player.ID, "alex@example.test")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(issued.Code), 36)
	require.True(t, strings.HasPrefix(issued.Link, "https://camp.example.test/player/join?code="))
	require.True(t, strings.HasSuffix(issued.Link, issued.Code))

	// The roster shows the invite went out
	roster, err := coach.ListPlayers(t.Context())
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.True(t, roster[0].InviteSent)
	require.Equal(t, "alex@example.test", roster[0].Email)

	// The join page resolves the code
	details, err := client.ValidateInvite(t.Context(), issued.Code)
	require.NoError(t, err)
	require.Equal(t, "Alex Morgan", details.PlayerName)
	require.Equal(t, "Forward", details.PlayerPosition)
	require.Equal(t, coachName, details.CoachName)
	require.Equal(t, "My Team", details.TeamName)

	// The player sets a password and is logged straight in
	playerSession, err := client.AcceptInvite(t.Context(), issued.Code, "abc123", "abc123")
	require.NoError(t, err)
	require.Equal(t, "player", playerSession.Scope())

	// The code is burned
	_, err = client.ValidateInvite(t.Context(), issued.Code)
	apiErr := requireAPIError(t, err, http.StatusNotFound)
	require.Equal(t, "Invalid or expired invite code", apiErr.Description)

	// Logging in again later works through the portal endpoint
	again, err := client.LoginPlayer(t.Context(), "alex@example.test", "abc123")
	require.NoError(t, err)
	require.Equal(t, "player", again.Scope())
}

func TestInviteValidationFailures(t *testing.T) {
	client := setupService(t)
	coach := signUpCoach(t, client)
	player := addPlayer(t, coach, "Jordan Lee", "Midfield")

	t.Run("unknown code", func(t *testing.T) {
		_, err := client.ValidateInvite(t.Context(), "completely-made-up")
		requireAPIError(t, err, http.StatusNotFound)
	})

	t.Run("password mismatch leaves the invite usable", func(t *testing.T) {
		issued, err := coach.IssueInvite(t.Context(), player.ID, "jordan@example.test")
		require.NoError(t, err)

		_, err = client.AcceptInvite(t.Context(), issued.Code, "abc123", "xyz789")
		requireAPIError(t, err, http.StatusBadRequest)

		// No account was created, and the invite still validates
		_, err = client.LoginPlayer(t.Context(), "jordan@example.test", "abc123")
		requireAPIError(t, err, http.StatusUnauthorized)
		_, err = client.ValidateInvite(t.Context(), issued.Code)
		require.NoError(t, err)
	})

	t.Run("double acceptance", func(t *testing.T) {
		issued, err := coach.IssueInvite(t.Context(), player.ID, "jordan@example.test")
		require.NoError(t, err)

		_, err = client.AcceptInvite(t.Context(), issued.Code, "secret123", "secret123")
		require.NoError(t, err)

		_, err = client.AcceptInvite(t.Context(), issued.Code, "secret123", "secret123")
		requireAPIError(t, err, http.StatusNotFound)
	})

	t.Run("invite for someone else's roster", func(t *testing.T) {
		_, err := coach.IssueInvite(t.Context(), "not-a-player-id", "ghost@example.test")
		requireAPIError(t, err, http.StatusNotFound)
	})
}

func TestReinviteKeepsHistory(t *testing.T) {
	client := setupService(t)
	coach := signUpCoach(t, client)
	player := addPlayer(t, coach, "Casey Fox", "Keeper")

	first, err := coach.IssueInvite(t.Context(), player.ID, "casey@example.test")
	require.NoError(t, err)
	second, err := coach.IssueInvite(t.Context(), player.ID, "casey@example.test")
	require.NoError(t, err)
	require.NotEqual(t, first.Code, second.Code)

	// Both codes resolve until one is used or expires
	_, err = client.ValidateInvite(t.Context(), first.Code)
	require.NoError(t, err)
	_, err = client.ValidateInvite(t.Context(), second.Code)
	require.NoError(t, err)

	history, err := coach.ListInviteHistory(t.Context(), player.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}
