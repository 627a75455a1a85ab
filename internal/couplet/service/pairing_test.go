package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

func TestGenerateInviteCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")

	code, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)
	require.True(t, validatex.ValidInviteCode(code.Code))
	require.Equal(t, t0, code.CreatedAt)
	require.Equal(t, time.Hour, code.ExpiresAt.Sub(code.CreatedAt))
	require.Equal(t, a, code.OwnerID)
}

func TestGenerateInviteCodeUnknownOwner(t *testing.T) {
	h := newHarness(t)
	_, err := h.pairing.GenerateInviteCode(context.Background(), "nobody")
	require.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestCurrentInviteCodeLifetime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")

	_, err := h.pairing.GetCurrentInviteCode(ctx, a)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)

	code, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	h.clock.Set(t0.Add(30 * time.Minute))
	cur, err := h.pairing.GetCurrentInviteCode(ctx, a)
	require.NoError(t, err)
	require.Equal(t, code.Code, cur.Code)

	h.clock.Set(t0.Add(61 * time.Minute))
	_, err = h.pairing.GetCurrentInviteCode(ctx, a)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)
}

func TestLatestCodeSupersedesEarlier(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	h.pairing.NewCode = sequence("FIRST1", "SECND2")

	first, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)
	h.clock.Set(t0.Add(time.Minute))
	second, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	cur, err := h.pairing.GetCurrentInviteCode(ctx, a)
	require.NoError(t, err)
	require.Equal(t, second.Code, cur.Code)

	_, err = h.pairing.AcceptInviteCode(ctx, first.Code, b)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)

	_, err = h.pairing.AcceptInviteCode(ctx, second.Code, b)
	require.NoError(t, err)
}

func TestAcceptInviteCodeLinksBothProfiles(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	h.pairing.NewCode = sequence("AB12CD")

	_, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	h.clock.Set(t0.Add(10 * time.Minute))
	couple, err := h.pairing.AcceptInviteCode(ctx, "  ab12cd ", b)
	require.NoError(t, err)
	require.Equal(t, a, couple.Partner1ID)
	require.Equal(t, b, couple.Partner2ID)

	requireLinked(t, h, a, b)
	require.Equal(t, couple.ID, h.profile(t, a).CoupleID)

	for _, uid := range []string{a, b} {
		got := h.events.For(uid)
		require.Len(t, got, 1)
		require.Equal(t, events.TypeCoupleLinked, got[0].Type)
	}
}

func TestAcceptInviteCodeAtMostOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	c := h.seedUser(t, "c@example.com")

	code, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	_, err = h.pairing.AcceptInviteCode(ctx, code.Code, b)
	require.NoError(t, err)

	_, err = h.pairing.AcceptInviteCode(ctx, code.Code, c)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)
	require.False(t, h.profile(t, c).Paired())
}

func TestAcceptInviteCodeConcurrent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	code, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	accepters := []string{
		h.seedUser(t, "b@example.com"),
		h.seedUser(t, "c@example.com"),
		h.seedUser(t, "d@example.com"),
		h.seedUser(t, "e@example.com"),
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, uid := range accepters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.pairing.AcceptInviteCode(ctx, code.Code, uid)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, service.ErrInviteCodeNotFound)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, wins)
}

func TestAcceptExpiredInviteCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	c := h.seedUser(t, "c@example.com")
	d := h.seedUser(t, "d@example.com")

	unused, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	h.clock.Set(t0.Add(time.Hour))
	_, err = h.pairing.AcceptInviteCode(ctx, unused.Code, b)
	require.NoError(t, err, "valid at exactly expiresAt")

	used, err := h.pairing.GenerateInviteCode(ctx, c)
	require.NoError(t, err)
	_, err = h.pairing.AcceptInviteCode(ctx, used.Code, d)
	require.NoError(t, err)

	e := h.seedUser(t, "e@example.com")
	f := h.seedUser(t, "f@example.com")
	stale, err := h.pairing.GenerateInviteCode(ctx, e)
	require.NoError(t, err)

	h.clock.Set(t0.Add(3 * time.Hour))
	_, err = h.pairing.AcceptInviteCode(ctx, stale.Code, f)
	require.ErrorIs(t, err, service.ErrInviteCodeExpired)

	_, err = h.pairing.AcceptInviteCode(ctx, used.Code, f)
	require.ErrorIs(t, err, service.ErrInviteCodeExpired, "consumed and expired reads as expired")
}

func TestAcceptUnknownOrMalformedCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	b := h.seedUser(t, "b@example.com")

	_, err := h.pairing.AcceptInviteCode(ctx, "ZZZZZZ", b)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)

	for _, in := range []string{"", "ABC", "ABCDEFG", "AB-12C"} {
		_, err = h.pairing.AcceptInviteCode(ctx, in, b)
		require.ErrorIs(t, err, service.ErrValidation, in)

		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "code")
	}
}

func TestAcceptOwnCodeRollsBack(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")

	code, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	_, err = h.pairing.AcceptInviteCode(ctx, code.Code, a)
	require.ErrorIs(t, err, service.ErrSelfPairing)

	cur, err := h.pairing.GetCurrentInviteCode(ctx, a)
	require.NoError(t, err, "failed link must not consume the code")
	require.Equal(t, code.Code, cur.Code)

	_, err = h.pairing.AcceptInviteCode(ctx, code.Code, b)
	require.NoError(t, err)
}

func TestPairedUsersCannotPairAgain(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	c := h.seedUser(t, "c@example.com")

	code, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)
	_, err = h.pairing.AcceptInviteCode(ctx, code.Code, b)
	require.NoError(t, err)

	_, err = h.pairing.GenerateInviteCode(ctx, a)
	require.ErrorIs(t, err, service.ErrAlreadyPaired)

	cCode, err := h.pairing.GenerateInviteCode(ctx, c)
	require.NoError(t, err)
	_, err = h.pairing.AcceptInviteCode(ctx, cCode.Code, b)
	require.ErrorIs(t, err, service.ErrAlreadyPaired)

	_, err = h.pairing.GetCurrentInviteCode(ctx, c)
	require.NoError(t, err, "code survives a rejected redemption")
}

func TestGenerateInviteCodeRetriesCollisions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	c := h.seedUser(t, "c@example.com")

	h.pairing.NewCode = sequence("SAME11")
	_, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	h.pairing.NewCode = sequence("SAME11", "SAME11", "OTHER2")
	code, err := h.pairing.GenerateInviteCode(ctx, b)
	require.NoError(t, err)
	require.Equal(t, "OTHER2", code.Code)

	h.pairing.NewCode = sequence("SAME11")
	_, err = h.pairing.GenerateInviteCode(ctx, c)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRegeneratingReusesOwnCodeValue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	h.pairing.NewCode = sequence("REUSE1")

	_, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)
	again, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err, "revoked code no longer blocks its value")
	require.Equal(t, "REUSE1", again.Code)
}

func TestPairingRevokesRedeemerCodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedUser(t, "a@example.com")
	b := h.seedUser(t, "b@example.com")
	c := h.seedUser(t, "c@example.com")
	h.pairing.NewCode = sequence("BCODE1", "ACODE1")

	bCode, err := h.pairing.GenerateInviteCode(ctx, b)
	require.NoError(t, err)
	aCode, err := h.pairing.GenerateInviteCode(ctx, a)
	require.NoError(t, err)

	_, err = h.pairing.AcceptInviteCode(ctx, aCode.Code, b)
	require.NoError(t, err)
	requireLinked(t, h, a, b)

	_, err = h.pairing.GetCurrentInviteCode(ctx, b)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)
	_, err = h.pairing.GetCurrentInviteCode(ctx, a)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)

	_, err = h.pairing.AcceptInviteCode(ctx, bCode.Code, c)
	require.ErrorIs(t, err, service.ErrInviteCodeNotFound)
	require.False(t, h.profile(t, c).Paired())
}

func TestCurrentInviteCodeUnknownOwner(t *testing.T) {
	h := newHarness(t)
	_, err := h.pairing.GetCurrentInviteCode(context.Background(), "nobody")
	require.ErrorIs(t, err, service.ErrProfileNotFound)
}
