package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
	"github.com/aussiebroadwan/couplet/pkg/idx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// PartnerInviteService pairs users by email address instead of by code.
// An invite is a pending couple that the invitee activates.
type PartnerInviteService struct {
	Store  store.Store
	Linker *Linker
	Events Publisher
	Now    func() time.Time
}

// InvitePartner opens a pending couple from inviterID to email. Inviting the
// same address twice returns the existing invite.
func (s *PartnerInviteService) InvitePartner(ctx context.Context, inviterID, email string) (couple domain.Couple, err error) {
	ctx, span := startSpan(ctx, "PartnerInviteService.InvitePartner", attribute.String("couplet.user_id", inviterID))
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if err := asValidationError(validate.Var("email", email, "required,email,max=254")); err != nil {
		logFailure(log, "partner invite rejected", err)
		return domain.Couple{}, err
	}

	now := nowOr(s.Now)
	created := false
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inviter, err := tx.Profiles().GetProfile(ctx, inviterID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load inviter profile: %w", err)
		}
		if inviter.Paired() {
			return ErrAlreadyPaired
		}
		if inviter.Email == email {
			return ErrSelfPairing
		}

		existing, err := tx.Couples().FindPendingInvite(ctx, inviterID, email)
		switch {
		case err == nil:
			couple = existing
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("find pending invite: %w", err)
		}

		couple = domain.Couple{
			ID:           idx.NewAt(now).String(),
			Partner1ID:   inviterID,
			InvitedEmail: email,
			Status:       domain.CoupleStatusPending,
			CreatedAt:    now,
		}
		if err := tx.Couples().CreateCouple(ctx, couple); err != nil {
			return fmt.Errorf("create pending couple: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		logFailure(log, "partner invite failed", err)
		return domain.Couple{}, err
	}

	if created {
		log.Info("partner invite created", slog.String("couple_id", couple.ID))
		s.notifyInvitee(ctx, couple, now)
	}
	return couple, nil
}

// notifyInvitee tells the invitee about a new invite if they already have an
// account. Unknown addresses see it on sign up via ListPendingInvites.
func (s *PartnerInviteService) notifyInvitee(ctx context.Context, c domain.Couple, now time.Time) {
	if s.Events == nil {
		return
	}
	invitee, err := s.Store.Users().GetUserByEmail(ctx, c.InvitedEmail)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("could not resolve invitee", slog.Any("error", err))
		}
		return
	}
	s.Events.Publish(invitee.ID, events.Event{
		Type: events.TypePartnerInviteReceived,
		Data: events.PartnerInviteReceived{InviteID: c.ID, InviterID: c.Partner1ID},
		At:   now,
	})
}

// AcceptPartnerInvite activates the pending couple coupleID for accepterID,
// whose profile email must be the invited address.
func (s *PartnerInviteService) AcceptPartnerInvite(ctx context.Context, coupleID, accepterID string) (couple domain.Couple, err error) {
	ctx, span := startSpan(ctx, "PartnerInviteService.AcceptPartnerInvite",
		attribute.String("couplet.user_id", accepterID),
		attribute.String("couplet.couple_id", coupleID),
	)
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		pending, err := tx.Couples().GetCouple(ctx, coupleID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPartnerInviteNotFound
			}
			return fmt.Errorf("load couple: %w", err)
		}
		if pending.Status != domain.CoupleStatusPending {
			return ErrPartnerInviteNotFound
		}

		accepter, err := tx.Profiles().GetProfile(ctx, accepterID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load accepter profile: %w", err)
		}
		if accepter.Email != pending.InvitedEmail {
			return fmt.Errorf("%w: addressed to another email", ErrPartnerInviteNotFound)
		}

		couple, err = s.Linker.ActivateTx(ctx, tx, pending, accepterID)
		return err
	})
	if err != nil {
		logFailure(log, "accept partner invite failed", err)
		return domain.Couple{}, err
	}

	publishLinked(s.Events, couple, now)
	return couple, nil
}

// ListPendingInvites returns open invites addressed to the user's email.
func (s *PartnerInviteService) ListPendingInvites(ctx context.Context, userID string) (invites []domain.Couple, err error) {
	ctx, span := startSpan(ctx, "PartnerInviteService.ListPendingInvites", attribute.String("couplet.user_id", userID))
	defer func() { endSpan(span, err) }()

	p, err := s.Store.Profiles().GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if p.Paired() {
		return []domain.Couple{}, nil
	}
	invites, err = s.Store.Couples().ListPendingByEmail(ctx, p.Email)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list pending invites", slog.Any("error", err))
		return nil, err
	}
	return invites, nil
}
