package coupletsdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultProfileWait bounds how long AwaitProfile polls.
const DefaultProfileWait = 15 * time.Second

// GetProfile returns the signed-in user's profile.
func (s *Session) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/profile", nil)
	if err != nil {
		return nil, err
	}

	var p ProfileResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes display name and/or theme. Empty fields are left
// as they are.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/profile", req)
	if err != nil {
		return nil, err
	}

	var p ProfileResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadAvatar replaces the avatar with image data (JPEG, PNG, GIF or
// WebP, at most 5 MiB).
func (s *Session) UploadAvatar(ctx context.Context, data []byte, contentType string) (*ProfileResponse, error) {
	token, err := s.validToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.client.url("/v1/profile/avatar"), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.send(req)
	if err != nil {
		return nil, err
	}

	var p ProfileResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetCoupleSummary returns the couple, the partner's profile and days
// together. Fails with ErrNotFound while unpaired.
func (s *Session) GetCoupleSummary(ctx context.Context) (*CoupleSummaryResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/couple", nil)
	if err != nil {
		return nil, err
	}

	var sum CoupleSummaryResponse
	if err := decodeJSON(resp, &sum, http.StatusOK); err != nil {
		return nil, err
	}
	return &sum, nil
}

// AwaitProfile polls for the user's profile with exponential backoff until
// it is readable. It gives up with ErrConsistencyTimeout after the
// client's ProfileWait. Errors other than ErrNotFound end the wait at once.
func (s *Session) AwaitProfile(ctx context.Context) (*ProfileResponse, error) {
	wait := s.client.ProfileWait
	if wait <= 0 {
		wait = DefaultProfileWait
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = wait

	var profile *ProfileResponse
	op := func() error {
		p, err := s.GetProfile(ctx)
		if err == nil {
			profile = p
			return nil
		}
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	switch {
	case err == nil:
		return profile, nil
	case errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("%w: %w", ErrConsistencyTimeout, err)
	default:
		return nil, err
	}
}
