package events_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
	"github.com/aussiebroadwan/couplet/pkg/jwtx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

func TestHubDeliversOnlyToUser(t *testing.T) {
	hub := events.NewHub(slogx.Discard())
	a := hub.Connect("alice")
	b := hub.Connect("bob")
	defer hub.Disconnect(a)
	defer hub.Disconnect(b)
	require.Equal(t, 2, hub.ClientCount())

	hub.Publish("alice", events.Event{Type: events.TypeCoupleLinked})

	select {
	case e := <-a.Events:
		require.Equal(t, events.TypeCoupleLinked, e.Type)
		require.False(t, e.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("alice got nothing")
	}
	require.Empty(t, b.Events)
}

func TestHubDropsForSlowClient(t *testing.T) {
	hub := events.NewHub(slogx.Discard())
	c := hub.Connect("alice")
	defer hub.Disconnect(c)

	for range 100 {
		hub.Publish("alice", events.Event{Type: events.TypeHeartbeat})
	}
	require.Equal(t, cap(c.Events), len(c.Events))
}

func TestHubDisconnectAndShutdown(t *testing.T) {
	hub := events.NewHub(slogx.Discard())
	c := hub.Connect("alice")
	hub.Disconnect(c)
	hub.Disconnect(c)
	require.Zero(t, hub.ClientCount())

	d := hub.Connect("bob")
	hub.Shutdown()
	<-d.Done
	require.Zero(t, hub.ClientCount())

	late := hub.Connect("carol")
	<-late.Done
}

func TestHandlerStreamsEvents(t *testing.T) {
	hub := events.NewHub(slogx.Discard())
	h := &events.Handler{Hub: hub, Heartbeat: time.Hour}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := jwtx.Claims{}
		claims.Subject = "alice"
		h.ServeHTTP(w, r.WithContext(httpx.WithAuth(r.Context(), claims)))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	frames := readFrames(resp)

	first := <-frames
	require.Equal(t, "connected", first.event)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish("alice", events.Event{
		Type: events.TypeCoupleLinked,
		Data: events.CoupleLinked{CoupleID: "c1", PartnerID: "bob"},
	})

	second := <-frames
	require.Equal(t, "couple.linked", second.event)
	var got struct {
		Type string              `json:"type"`
		Data events.CoupleLinked `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(second.data), &got))
	require.Equal(t, "c1", got.Data.CoupleID)
	require.Equal(t, "bob", got.Data.PartnerID)
}

type frame struct{ event, data string }

func readFrames(resp *http.Response) <-chan frame {
	out := make(chan frame, 8)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(resp.Body)
		var f frame
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				f.event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				f.data = strings.TrimPrefix(line, "data: ")
			case line == "":
				out <- f
				f = frame{}
			}
		}
	}()
	return out
}
