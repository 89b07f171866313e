package jwtx_test

import (
	"testing"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"coach-123", "coach@example.com", "Coach Carter",
		[]string{jwtx.ScopeCoach},
		jwtx.DefaultSessionTTL,
		"campreport",
		time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := jwtx.NewVerifier("campreport", signer)
	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "coach-123", got.Subject)
	require.Equal(t, "coach@example.com", got.Email)
	require.True(t, got.HasScope(jwtx.ScopeCoach))
	require.False(t, got.HasScope(jwtx.ScopePlayer))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"player-1", "alex@example.com", "Alex",
		[]string{jwtx.ScopePlayer},
		time.Minute,
		"campreport",
		time.Now().UTC().Add(-time.Hour),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifier("campreport", signer)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"coach-1", "c@example.com", "C",
		[]string{jwtx.ScopeCoach},
		time.Minute, "someone-else", time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifier("campreport", signer)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	signer, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)
	other, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"coach-1", "c@example.com", "C",
		[]string{jwtx.ScopeCoach},
		time.Minute, "campreport", time.Now().UTC(),
	)
	token, err := other.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifier("campreport", signer)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsAlgConfusion(t *testing.T) {
	signer, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)

	// HS256 token signed with the public key bytes must never verify.
	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "coach-1"})
	hs.Header["kid"] = "key-1"
	token, err := hs.SignedString([]byte(signer.Public()))
	require.NoError(t, err)

	verifier := jwtx.NewVerifier("campreport", signer)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer, err := jwtx.NewEphemeralSigner("key-1")
	require.NoError(t, err)

	verifier := jwtx.NewVerifier("campreport", signer)
	_, err = verifier.Verify("not.a.jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
