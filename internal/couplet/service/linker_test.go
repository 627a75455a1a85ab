package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
)

func TestLinker(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	c := h.seedUser(t, "c@example.com")

	_, err := h.linker.Link(ctx, a, a)
	require.ErrorIs(t, err, service.ErrSelfPairing)

	_, err = h.linker.Link(ctx, a, "ghost")
	require.ErrorIs(t, err, service.ErrProfileNotFound)

	couple, err := h.linker.Link(ctx, a, b)
	require.NoError(t, err)
	require.Equal(t, domain.CoupleStatusActive, couple.Status)
	require.Equal(t, t0, couple.CreatedAt)
	requireLinked(t, h, a, b)

	stored, err := h.store.Couples().GetCouple(ctx, couple.ID)
	require.NoError(t, err)
	require.Equal(t, couple.Partner1ID, stored.Partner1ID)
	require.Equal(t, couple.Partner2ID, stored.Partner2ID)

	_, err = h.linker.Link(ctx, c, b)
	require.ErrorIs(t, err, service.ErrAlreadyPaired)
	require.False(t, h.profile(t, c).Paired(), "no partial link left behind")
}
