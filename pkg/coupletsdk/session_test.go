package coupletsdk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, h http.HandlerFunc) (*Session, *SDKClient) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)
	return client.NewSessionFromToken("token", "user-1", time.Now().Add(time.Hour)), client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestAwaitProfileRetriesUntilVisible(t *testing.T) {
	var calls atomic.Int32
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			writeJSON(w, http.StatusUnauthorized, `{"error":"invalid_token"}`)
			return
		}
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusNotFound, `{"error":"not_found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"user-1","display_name":"Alex","theme":"light"}`)
	})

	p, err := s.AwaitProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alex", p.DisplayName)
	require.EqualValues(t, 3, calls.Load())
}

func TestAwaitProfileTimesOut(t *testing.T) {
	s, client := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"not_found"}`)
	})
	client.ProfileWait = 300 * time.Millisecond

	start := time.Now()
	_, err := s.AwaitProfile(context.Background())
	require.ErrorIs(t, err, ErrConsistencyTimeout)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestAwaitProfileStopsOnOtherErrors(t *testing.T) {
	var calls atomic.Int32
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, `{"error":"server_error"}`)
	})

	_, err := s.AwaitProfile(context.Background())
	require.ErrorIs(t, err, ErrRemote)
	require.NotErrorIs(t, err, ErrConsistencyTimeout)
	require.EqualValues(t, 1, calls.Load())
}

func TestTransportFailureIsRemote(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewSDKClient(url).GetLiveness(context.Background())
	require.ErrorIs(t, err, ErrRemote)
}

func TestAPIErrorMatching(t *testing.T) {
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusGone, `{"error":"expired","error_description":"Invite code has expired"}`)
	})

	_, err := s.AcceptInviteCode(context.Background(), "abc123")
	require.ErrorIs(t, err, ErrExpired)
	require.NotErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrRemote)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusGone, apiErr.StatusCode)
	require.Equal(t, "expired: Invite code has expired", apiErr.Error())
}

func TestAcceptInviteCodeNormalizesAndValidatesLocally(t *testing.T) {
	var body atomic.Value
	s, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body.Store(string(b))
		writeJSON(w, http.StatusOK, `{"id":"c1","status":"active"}`)
	})

	for _, bad := range []string{"", "ABC12", "ABC1234", "ABC-12"} {
		_, err := s.AcceptInviteCode(context.Background(), bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, bad)
		require.Contains(t, verr.Fields, "code")
		require.ErrorIs(t, err, ErrValidation)
	}
	require.Nil(t, body.Load())

	couple, err := s.AcceptInviteCode(context.Background(), "  ab3k9z ")
	require.NoError(t, err)
	require.Equal(t, "active", couple.Status)
	require.Contains(t, body.Load(), `"code":"AB3K9Z"`)
}

func TestExpiredSessionFailsLocally(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	s := NewSDKClient(srv.URL).NewSessionFromToken("token", "user-1", time.Now().Add(10*time.Second))
	require.True(t, s.Expired())

	_, err := s.GetProfile(context.Background())
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Zero(t, hits.Load())

	live := NewSDKClient(srv.URL).NewSessionFromToken("token", "user-1", time.Now().Add(time.Hour))
	live.Close()
	_, err = live.GetProfile(context.Background())
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestReadEventsSkipsHousekeepingFrames(t *testing.T) {
	stream := strings.Join([]string{
		`event: connected`,
		`data: {"type":"connected","data":{"client_id":"x"},"at":"2026-01-01T00:00:00Z"}`,
		``,
		`event: heartbeat`,
		`data: {"type":"heartbeat","at":"2026-01-01T00:00:25Z"}`,
		``,
		`event: couple.linked`,
		`data: {"type":"couple.linked","data":{"couple_id":"c1","partner_id":"p1"},"at":"2026-01-01T00:00:30Z"}`,
		``,
		`data: not json`,
		``,
	}, "\n")

	out := make(chan Event, 4)
	readEvents(context.Background(), strings.NewReader(stream), out)
	close(out)

	var got []Event
	for e := range out {
		got = append(got, e)
	}
	require.Len(t, got, 1)
	require.Equal(t, EventCoupleLinked, got[0].Type)
	require.JSONEq(t, `{"couple_id":"c1","partner_id":"p1"}`, string(got[0].Data))
}
