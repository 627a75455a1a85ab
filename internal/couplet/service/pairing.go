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
	"github.com/aussiebroadwan/couplet/pkg/slogx"
	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

// PairingService issues and redeems invite codes.
type PairingService struct {
	Store  store.Store
	Linker *Linker
	Events Publisher

	// Now and NewCode default to the wall clock and GenerateCode.
	Now     func() time.Time
	NewCode func() (string, error)
}

// GenerateInviteCode issues a new code for owner, revoking any code the
// owner still has live.
func (s *PairingService) GenerateInviteCode(ctx context.Context, ownerID string) (code domain.InviteCode, err error) {
	ctx, span := startSpan(ctx, "PairingService.GenerateInviteCode", attribute.String("couplet.user_id", ownerID))
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		owner, err := tx.Profiles().GetProfile(ctx, ownerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("load owner profile: %w", err)
		}
		if owner.Paired() {
			return ErrAlreadyPaired
		}

		revoked, err := tx.InviteCodes().RevokeActive(ctx, ownerID, now)
		if err != nil {
			return fmt.Errorf("revoke previous codes: %w", err)
		}
		if revoked > 0 {
			log.Debug("revoked superseded invite codes", slog.Int64("count", revoked))
		}

		for attempt := 1; ; attempt++ {
			draft, err := NewInviteCode(s.NewCode, ownerID, now)
			if err != nil {
				return err
			}
			err = tx.InviteCodes().CreateInviteCode(ctx, draft)
			if err == nil {
				code = draft
				return nil
			}
			if !errors.Is(err, store.ErrAlreadyExists) || attempt == maxCodeAttempts {
				return fmt.Errorf("store invite code: %w", err)
			}
			log.Warn("invite code collision, regenerating", slog.Int("attempt", attempt))
		}
	})
	if err != nil {
		logFailure(log, "generate invite code failed", err)
		return domain.InviteCode{}, err
	}

	log.Info("invite code generated",
		slog.String("invite_code_id", code.ID),
		slog.Time("expires_at", code.ExpiresAt),
	)
	return code, nil
}

// GetCurrentInviteCode returns the owner's newest code while it can still be
// redeemed. An expired, consumed or revoked newest code reads as not found,
// as does any code of an owner who is already paired.
func (s *PairingService) GetCurrentInviteCode(ctx context.Context, ownerID string) (code domain.InviteCode, err error) {
	ctx, span := startSpan(ctx, "PairingService.GetCurrentInviteCode", attribute.String("couplet.user_id", ownerID))
	defer func() { endSpan(span, err) }()

	owner, err := s.Store.Profiles().GetProfile(ctx, ownerID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.InviteCode{}, ErrProfileNotFound
	case err != nil:
		slogx.FromContext(ctx).Error("failed to load profile", slog.Any("error", err))
		return domain.InviteCode{}, err
	case owner.Paired():
		return domain.InviteCode{}, ErrInviteCodeNotFound
	}

	code, err = s.Store.InviteCodes().GetLatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InviteCode{}, ErrInviteCodeNotFound
		}
		slogx.FromContext(ctx).Error("failed to load current invite code", slog.Any("error", err))
		return domain.InviteCode{}, err
	}
	if !code.Active(nowOr(s.Now)) {
		return domain.InviteCode{}, ErrInviteCodeNotFound
	}
	return code, nil
}

// AcceptInviteCode redeems input for accepterID and links the accepter with
// the code's owner. Matching is case-insensitive. Consumption and linking
// commit together or not at all.
func (s *PairingService) AcceptInviteCode(ctx context.Context, input, accepterID string) (couple domain.Couple, err error) {
	ctx, span := startSpan(ctx, "PairingService.AcceptInviteCode", attribute.String("couplet.user_id", accepterID))
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	code := validatex.NormalizeInviteCode(input)
	if !validatex.ValidInviteCode(code) {
		err = invalidField("code", fmt.Sprintf("must be %d letters or digits", validatex.InviteCodeLength))
		log.Warn("malformed invite code submitted", slog.Int("length", len(code)))
		return domain.Couple{}, err
	}

	now := nowOr(s.Now)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ic, err := tx.InviteCodes().GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteCodeNotFound
			}
			return fmt.Errorf("look up invite code: %w", err)
		}
		if ic.Expired(now) {
			return ErrInviteCodeExpired
		}
		if ic.Consumed || ic.RevokedAt != nil {
			return ErrInviteCodeNotFound
		}

		if err := tx.InviteCodes().Consume(ctx, ic.ID, accepterID, now); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrInviteCodeNotFound
			}
			return fmt.Errorf("consume invite code: %w", err)
		}

		couple, err = s.Linker.LinkTx(ctx, tx, ic.OwnerID, accepterID)
		return err
	})
	if err != nil {
		logFailure(log, "accept invite code failed", err)
		return domain.Couple{}, err
	}

	publishLinked(s.Events, couple, now)
	return couple, nil
}

// logFailure logs expected domain outcomes at warn and everything else at
// error.
func logFailure(log *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInviteCodeNotFound),
		errors.Is(err, ErrInviteCodeExpired),
		errors.Is(err, ErrAlreadyPaired),
		errors.Is(err, ErrSelfPairing),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrCoupleNotFound),
		errors.Is(err, ErrPartnerInviteNotFound),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrWeakCredential),
		errors.Is(err, ErrInvalidCredential),
		errors.Is(err, ErrAvatarTooLarge),
		errors.Is(err, ErrUnsupportedImage):
		log.Warn(msg, slog.String("reason", err.Error()))
	default:
		log.Error(msg, slog.Any("error", err))
	}
}
