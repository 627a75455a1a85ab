package coupletsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// ProfileWait bounds AwaitProfile. Defaults to DefaultProfileWait.
	ProfileWait time.Duration
}

// NewSDKClient returns a client with a 10s request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUp creates an account and returns a session for it. The returned
// profile is the server's view at creation time.
func (c *SDKClient) SignUp(ctx context.Context, req SignUpRequest) (*Session, *ProfileResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts", req)
	if err != nil {
		return nil, nil, err
	}

	var out SignUpResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, nil, err
	}

	return newSession(c, out.SessionResponse), &out.Profile, nil
}

// SignIn exchanges email and password for a session.
func (c *SDKClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", SignInRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, out), nil
}

// NewSessionFromToken restores a session from a previously stored token.
func (c *SDKClient) NewSessionFromToken(accessToken, userID string, expiresAt time.Time) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		userID:      userID,
		expiresAt:   expiresAt,
	}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service can serve traffic.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS retrieves the public keys that verify access tokens.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}
