package coupletsdk

import (
	"net/http"
	"sync"
	"time"
)

// expiryBuffer treats a token as expired slightly early so a request does
// not race the server's clock.
const expiryBuffer = 30 * time.Second

// Session is a signed-in user. All methods are safe for concurrent use.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	userID      string
	expiresAt   time.Time
}

func newSession(client *SDKClient, resp SessionResponse) *Session {
	expiresAt := resp.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return &Session{
		client:      client,
		accessToken: resp.AccessToken,
		userID:      resp.UserID,
		expiresAt:   expiresAt,
	}
}

// UserID is the subject of the access token.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// AccessToken returns the raw bearer token, e.g. for persisting the session.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ExpiresAt is when the server stops accepting the token.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Expired reports whether the token is at or near its expiry.
func (s *Session) Expired() bool {
	return !time.Now().Add(expiryBuffer).Before(s.ExpiresAt())
}

// Close forgets the token. Later calls fail with ErrInvalidToken.
func (s *Session) Close() {
	s.mu.Lock()
	s.accessToken = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	token, expiresAt := s.accessToken, s.expiresAt
	s.mu.RUnlock()

	if token == "" || !time.Now().Add(expiryBuffer).Before(expiresAt) {
		return "", &APIError{
			StatusCode:  http.StatusUnauthorized,
			Code:        ErrorCodeInvalidToken,
			Description: "session expired, sign in again",
		}
	}
	return token, nil
}
