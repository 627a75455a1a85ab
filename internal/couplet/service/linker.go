package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
	"github.com/aussiebroadwan/couplet/pkg/idx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// Linker joins two profiles into a couple. Every write for one link happens
// in a single transaction.
type Linker struct {
	Store store.Store
	Now   func() time.Time
}

// Link creates an active couple for userA and userB in its own transaction.
func (l *Linker) Link(ctx context.Context, userA, userB string) (domain.Couple, error) {
	var couple domain.Couple
	err := l.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		couple, err = l.LinkTx(ctx, tx, userA, userB)
		return err
	})
	return couple, err
}

// LinkTx is Link inside the caller's transaction. userA becomes partner 1.
func (l *Linker) LinkTx(ctx context.Context, tx store.Tx, userA, userB string) (couple domain.Couple, err error) {
	ctx, span := startSpan(ctx, "Linker.LinkTx",
		attribute.String("couplet.partner1_id", userA),
		attribute.String("couplet.partner2_id", userB),
	)
	defer func() { endSpan(span, err) }()

	if userA == userB {
		return domain.Couple{}, ErrSelfPairing
	}
	if err := l.checkUnpaired(ctx, tx, userA, userB); err != nil {
		return domain.Couple{}, err
	}

	now := nowOr(l.Now)
	couple = domain.Couple{
		ID:          idx.NewAt(now).String(),
		Partner1ID:  userA,
		Partner2ID:  userB,
		Status:      domain.CoupleStatusActive,
		CreatedAt:   now,
		ActivatedAt: &now,
	}
	if err := tx.Couples().CreateCouple(ctx, couple); err != nil {
		return domain.Couple{}, fmt.Errorf("create couple: %w", err)
	}
	if err := linkProfiles(ctx, tx, couple, now); err != nil {
		return domain.Couple{}, err
	}

	slogx.FromContext(ctx).Info("couple linked",
		slog.String("couple_id", couple.ID),
		slog.String("partner1_id", userA),
		slog.String("partner2_id", userB),
	)
	return couple, nil
}

// ActivateTx completes a pending email-invite couple with accepterID as
// partner 2.
func (l *Linker) ActivateTx(ctx context.Context, tx store.Tx, couple domain.Couple, accepterID string) (_ domain.Couple, err error) {
	ctx, span := startSpan(ctx, "Linker.ActivateTx",
		attribute.String("couplet.couple_id", couple.ID),
		attribute.String("couplet.partner2_id", accepterID),
	)
	defer func() { endSpan(span, err) }()

	if couple.Partner1ID == accepterID {
		return domain.Couple{}, ErrSelfPairing
	}
	if err := l.checkUnpaired(ctx, tx, couple.Partner1ID, accepterID); err != nil {
		return domain.Couple{}, err
	}

	now := nowOr(l.Now)
	if err := tx.Couples().ActivateCouple(ctx, couple.ID, accepterID, now); err != nil {
		if errors.Is(err, store.ErrConflict) || errors.Is(err, store.ErrNotFound) {
			return domain.Couple{}, ErrPartnerInviteNotFound
		}
		return domain.Couple{}, fmt.Errorf("activate couple: %w", err)
	}
	couple.Partner2ID = accepterID
	couple.Status = domain.CoupleStatusActive
	couple.ActivatedAt = &now

	if err := linkProfiles(ctx, tx, couple, now); err != nil {
		return domain.Couple{}, err
	}

	slogx.FromContext(ctx).Info("couple activated",
		slog.String("couple_id", couple.ID),
		slog.String("partner1_id", couple.Partner1ID),
		slog.String("partner2_id", accepterID),
	)
	return couple, nil
}

func (l *Linker) checkUnpaired(ctx context.Context, tx store.Tx, ids ...string) error {
	for _, id := range ids {
		p, err := tx.Profiles().GetProfile(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load profile: %w", err)
		}
		if p.Paired() {
			return ErrAlreadyPaired
		}
	}
	return nil
}

// linkProfiles points both profiles at c and revokes any code either
// partner still has live, since a paired user cannot be invited.
func linkProfiles(ctx context.Context, tx store.Tx, c domain.Couple, now time.Time) error {
	for _, pair := range [][2]string{{c.Partner1ID, c.Partner2ID}, {c.Partner2ID, c.Partner1ID}} {
		if err := tx.Profiles().LinkProfile(ctx, pair[0], c.ID, pair[1], now); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrAlreadyPaired
			}
			return fmt.Errorf("link profile: %w", err)
		}
		if _, err := tx.InviteCodes().RevokeActive(ctx, pair[0], now); err != nil {
			return fmt.Errorf("revoke invite codes: %w", err)
		}
	}
	return nil
}
