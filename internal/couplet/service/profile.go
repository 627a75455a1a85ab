package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
	"github.com/aussiebroadwan/couplet/pkg/idx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// BlobStore keeps uploaded files and knows their public URL.
// *blob.Store satisfies it.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// CoupleSummary is what a paired user sees about their relationship.
type CoupleSummary struct {
	Couple       domain.Couple
	Partner      domain.Profile
	DaysTogether int
}

type ProfileService struct {
	Store store.Store
	Blobs BlobStore
	Now   func() time.Time
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	p, err := s.Store.Profiles().GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}
		slogx.FromContext(ctx).Error("failed to load profile", slog.Any("error", err))
		return domain.Profile{}, err
	}
	return p, nil
}

type profileUpdate struct {
	DisplayName string       `json:"display_name" validate:"required,min=2,max=50"`
	Theme       domain.Theme `json:"theme" validate:"required,oneof=light dark"`
}

// UpdateProfile changes display name and theme. Empty arguments keep the
// current value.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, displayName string, theme domain.Theme) (p domain.Profile, err error) {
	ctx, span := startSpan(ctx, "ProfileService.UpdateProfile", attribute.String("couplet.user_id", userID))
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	p, err = s.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	upd := profileUpdate{DisplayName: p.DisplayName, Theme: p.Theme}
	if name := strings.TrimSpace(displayName); name != "" {
		upd.DisplayName = name
	}
	if theme != "" {
		upd.Theme = theme
	}
	if err := asValidationError(validate.Struct(upd)); err != nil {
		logFailure(log, "profile update rejected", err)
		return domain.Profile{}, err
	}

	now := nowOr(s.Now)
	if err := s.Store.Profiles().UpdateProfile(ctx, userID, upd.DisplayName, upd.Theme, now); err != nil {
		log.Error("failed to update profile", slog.Any("error", err))
		return domain.Profile{}, err
	}

	p.DisplayName = upd.DisplayName
	p.Theme = upd.Theme
	p.UpdatedAt = now
	return p, nil
}

// UploadAvatar stores an image as the user's avatar and records its public
// URL and blurhash placeholder on the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, data []byte, contentType string) (p domain.Profile, err error) {
	ctx, span := startSpan(ctx, "ProfileService.UploadAvatar",
		attribute.String("couplet.user_id", userID),
		attribute.Int("couplet.avatar_bytes", len(data)),
	)
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	if len(data) > MaxAvatarBytes {
		err = ErrAvatarTooLarge
		logFailure(log, "avatar rejected", err)
		return domain.Profile{}, err
	}

	p, err = s.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	img, err := decodeAvatar(data)
	if err != nil {
		logFailure(log, "avatar rejected", err)
		return domain.Profile{}, err
	}
	if contentType != "" && contentType != img.contentType {
		log.Debug("avatar content type differs from decoded format",
			slog.String("declared", contentType),
			slog.String("decoded", img.contentType),
		)
	}

	now := nowOr(s.Now)
	path := fmt.Sprintf("avatars/%s/%s%s", userID, idx.NewAt(now), avatarExt(img.format))
	path, err = s.Blobs.Upload(ctx, path, data, img.contentType)
	if err != nil {
		log.Error("failed to store avatar", slog.Any("error", err))
		return domain.Profile{}, err
	}
	url := s.Blobs.PublicURL(path)

	if err := s.Store.Profiles().UpdateAvatar(ctx, userID, url, img.blurhash, now); err != nil {
		log.Error("failed to record avatar", slog.Any("error", err))
		s.deleteBlob(ctx, path)
		return domain.Profile{}, err
	}

	log.Info("avatar uploaded", slog.String("path", path))
	if old, ok := s.blobPath(p.AvatarURL); ok && old != path {
		s.deleteBlob(ctx, old)
	}
	p.AvatarURL = url
	p.AvatarBlurhash = img.blurhash
	p.UpdatedAt = now
	return p, nil
}

// blobPath maps a URL handed out by PublicURL back to its blob path.
func (s *ProfileService) blobPath(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	path, ok := strings.CutPrefix(url, s.Blobs.PublicURL(""))
	return path, ok && path != ""
}

// deleteBlob removes an orphaned blob. Failure leaves garbage behind but
// does not fail the request.
func (s *ProfileService) deleteBlob(ctx context.Context, path string) {
	if err := s.Blobs.Delete(ctx, path); err != nil {
		slogx.FromContext(ctx).Warn("failed to delete avatar blob",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}

// GetCoupleSummary returns the user's couple together with the partner's
// profile. ErrCoupleNotFound if the user is not paired.
func (s *ProfileService) GetCoupleSummary(ctx context.Context, userID string) (sum CoupleSummary, err error) {
	ctx, span := startSpan(ctx, "ProfileService.GetCoupleSummary", attribute.String("couplet.user_id", userID))
	defer func() { endSpan(span, err) }()

	me, err := s.GetProfile(ctx, userID)
	if err != nil {
		return CoupleSummary{}, err
	}
	if !me.Paired() {
		return CoupleSummary{}, ErrCoupleNotFound
	}

	couple, err := s.Store.Couples().GetCouple(ctx, me.CoupleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CoupleSummary{}, ErrCoupleNotFound
		}
		return CoupleSummary{}, err
	}
	partner, err := s.GetProfile(ctx, couple.PartnerOf(userID))
	if err != nil {
		return CoupleSummary{}, err
	}

	return CoupleSummary{
		Couple:       couple,
		Partner:      partner,
		DaysTogether: couple.DaysTogether(nowOr(s.Now)),
	}, nil
}
