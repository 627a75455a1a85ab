package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

func TestHousekeepingDeletesOldCodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")

	_, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	h.clock.Set(t0.Add(20 * time.Hour))
	_, err = h.pairing.GenerateInviteCode(ctx, b)
	require.NoError(t, err)

	hk := service.NewHousekeepingService(h.store, slogx.Discard(), time.Hour, 0)
	require.Equal(t, service.DefaultInviteCodeRetention, hk.Retention)

	hk.Now = func() time.Time { return t0.Add(26 * time.Hour) }
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	_, err = h.store.InviteCodes().GetLatestByOwner(ctx, a)
	require.Error(t, err)
	_, err = h.store.InviteCodes().GetLatestByOwner(ctx, b)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	h := newHarness(t)
	hk := service.NewHousekeepingService(h.store, slogx.Discard(), 0, time.Hour)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Start()
	hk.Stop()
}
