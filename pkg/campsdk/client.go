// Package campsdk is a Go client for the camp report service. An SDKClient
// covers the unauthenticated surface (signup, logins, invite validation and
// acceptance, health probes) and hands back a Session for everything behind
// a bearer token.
package campsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the camp report service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client against the given base URL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUpCoach registers a new coach and returns an authenticated session.
func (c *SDKClient) SignUpCoach(ctx context.Context, email, password, fullName string) (*Session, error) {
	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/auth/signup", SignUpRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &tokenResp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return newSession(c, &tokenResp), nil
}

// LoginCoach authenticates a coach.
func (c *SDKClient) LoginCoach(ctx context.Context, email, password string) (*Session, error) {
	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &tokenResp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, &tokenResp), nil
}

// LoginPlayer authenticates a player for the portal.
func (c *SDKClient) LoginPlayer(ctx context.Context, email, password string) (*Session, error) {
	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/player/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &tokenResp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, &tokenResp), nil
}

// ValidateInvite resolves an invite code into the join-page details.
func (c *SDKClient) ValidateInvite(ctx context.Context, code string) (*InviteDetailsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/invites/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}

	var details InviteDetailsResponse
	if err := decodeJSON(resp, &details, http.StatusOK); err != nil {
		return nil, err
	}
	return &details, nil
}

// AcceptInvite consumes an invite and returns the new player's session.
func (c *SDKClient) AcceptInvite(ctx context.Context, code, password, confirmPassword string) (*Session, error) {
	var tokenResp TokenResponse
	err := c.postJSON(ctx, "/v1/invites/accept", AcceptInviteRequest{
		Code:            code,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}, &tokenResp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return newSession(c, &tokenResp), nil
}

// Livez checks the liveness probe.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz checks the readiness probe.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an unauthenticated HTTP request.
func (c *SDKClient) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *SDKClient) postJSON(ctx context.Context, path string, payload, target any, expectedStatus int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

// decodeJSON decodes a JSON response into target, or returns a typed
// *APIError when the status does not match.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatusNoContent returns a typed error unless the response is 204.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}
