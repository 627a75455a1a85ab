package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/internal/couplet/store/drivers/sqlite"
	"github.com/aussiebroadwan/couplet/pkg/idx"
)

var t0 = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type published struct {
	userID string
	event  events.Event
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(userID string, e events.Event) {
	r.mu.Lock()
	r.events = append(r.events, published{userID, e})
	r.mu.Unlock()
}

func (r *recorder) For(userID string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, p := range r.events {
		if p.userID == userID {
			out = append(out, p.event)
		}
	}
	return out
}

type harness struct {
	store    *sqlite.Store
	clock    *fakeClock
	events   *recorder
	linker   *service.Linker
	pairing  *service.PairingService
	partners *service.PartnerInviteService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := &fakeClock{t: t0}
	rec := &recorder{}
	linker := &service.Linker{Store: st, Now: clock.Now}
	return &harness{
		store:    st,
		clock:    clock,
		events:   rec,
		linker:   linker,
		pairing:  &service.PairingService{Store: st, Linker: linker, Events: rec, Now: clock.Now},
		partners: &service.PartnerInviteService{Store: st, Linker: linker, Events: rec, Now: clock.Now},
	}
}

// seedUser inserts a user and profile directly, skipping password hashing.
func (h *harness) seedUser(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	id := idx.New().String()
	require.NoError(t, h.store.Users().CreateUser(ctx, domain.User{
		ID: id, Email: email, PasswordHash: "unused", CreatedAt: t0, UpdatedAt: t0,
	}))
	require.NoError(t, h.store.Profiles().CreateProfile(ctx, domain.Profile{
		ID: id, DisplayName: "User " + email, Theme: domain.ThemeLight, Email: email, CreatedAt: t0, UpdatedAt: t0,
	}))
	return id
}

func (h *harness) profile(t *testing.T, id string) domain.Profile {
	t.Helper()
	p, err := h.store.Profiles().GetProfile(context.Background(), id)
	require.NoError(t, err)
	return p
}

func requireLinked(t *testing.T, h *harness, a, b string) {
	t.Helper()
	pa, pb := h.profile(t, a), h.profile(t, b)
	require.NotEmpty(t, pa.CoupleID)
	require.Equal(t, pa.CoupleID, pb.CoupleID)
	require.Equal(t, b, pa.PartnerID)
	require.Equal(t, a, pb.PartnerID)
}

// sequence returns a code generator that yields codes in order and then
// repeats the last one.
func sequence(codes ...string) func() (string, error) {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		c := codes[min(i, len(codes)-1)]
		i++
		return c, nil
	}
}
