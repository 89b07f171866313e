package campsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated client. Access tokens are short-lived and
// there is no refresh grant; when the token expires the caller logs in again.
type Session struct {
	client      *SDKClient
	accessToken string
	scope       string
	expiresAt   time.Time
}

func newSession(client *SDKClient, tokenResp *TokenResponse) *Session {
	return &Session{
		client:      client,
		accessToken: tokenResp.AccessToken,
		scope:       tokenResp.Scope,
		expiresAt:   time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}
}

// AccessToken exposes the raw bearer token, for callers that store it.
func (s *Session) AccessToken() string { return s.accessToken }

// Scope is the scope granted to this session ("coach" or "player").
func (s *Session) Scope() string { return s.scope }

// Expired reports whether the access token has passed its lifetime.
func (s *Session) Expired() bool { return time.Now().After(s.expiresAt) }

// Me fetches the authenticated subject's profile.
func (s *Session) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.getJSON(ctx, "/v1/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListPlayers returns the coach's roster.
func (s *Session) ListPlayers(ctx context.Context) ([]Player, error) {
	var players []Player
	if err := s.getJSON(ctx, "/v1/players", &players); err != nil {
		return nil, err
	}
	return players, nil
}

// AddPlayer creates a roster entry.
func (s *Session) AddPlayer(ctx context.Context, req PlayerRequest) (*Player, error) {
	var player Player
	if err := s.postJSON(ctx, "/v1/players", req, &player, http.StatusCreated); err != nil {
		return nil, err
	}
	return &player, nil
}

// UpdatePlayer changes a roster entry's editable fields.
func (s *Session) UpdatePlayer(ctx context.Context, playerID string, req PlayerRequest) (*Player, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/players/"+url.PathEscape(playerID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var player Player
	if err := decodeJSON(resp, &player, http.StatusOK); err != nil {
		return nil, err
	}
	return &player, nil
}

// DeletePlayer removes a roster entry along with its reports and invites.
func (s *Session) DeletePlayer(ctx context.Context, playerID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/players/"+url.PathEscape(playerID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// IssueInvite mints an invite link for a player.
func (s *Session) IssueInvite(ctx context.Context, playerID, email string) (*IssueInviteResponse, error) {
	var issued IssueInviteResponse
	path := "/v1/players/" + url.PathEscape(playerID) + "/invite"
	if err := s.postJSON(ctx, path, IssueInviteRequest{Email: email}, &issued, http.StatusCreated); err != nil {
		return nil, err
	}
	return &issued, nil
}

// ListInviteHistory returns every invite ever issued for a player.
func (s *Session) ListInviteHistory(ctx context.Context, playerID string) ([]InviteRecord, error) {
	var records []InviteRecord
	path := "/v1/players/" + url.PathEscape(playerID) + "/invites"
	if err := s.getJSON(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateReport writes a performance report for one of the coach's players.
func (s *Session) CreateReport(ctx context.Context, req ReportRequest) (*Report, error) {
	var report Report
	if err := s.postJSON(ctx, "/v1/reports", req, &report, http.StatusCreated); err != nil {
		return nil, err
	}
	return &report, nil
}

// RecentReports returns the coach dashboard's recent-reports list.
func (s *Session) RecentReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := s.getJSON(ctx, "/v1/reports", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// PlayerReports returns every report about one player.
func (s *Session) PlayerReports(ctx context.Context, playerID string) ([]Report, error) {
	var reports []Report
	path := "/v1/players/" + url.PathEscape(playerID) + "/reports"
	if err := s.getJSON(ctx, path, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// MyReports returns the authenticated player's own reports.
func (s *Session) MyReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := s.getJSON(ctx, "/v1/me/reports", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// doAuthRequest performs an HTTP request carrying the session's bearer token.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (s *Session) getJSON(ctx context.Context, path string, target any) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

func (s *Session) postJSON(ctx context.Context, path string, payload, target any, expectedStatus int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}
