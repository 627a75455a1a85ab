package http

import (
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
)

func toProfileResponse(p domain.Profile) coupletsdk.ProfileResponse {
	return coupletsdk.ProfileResponse{
		ID:             p.ID,
		DisplayName:    p.DisplayName,
		Email:          p.Email,
		AvatarURL:      p.AvatarURL,
		AvatarBlurhash: p.AvatarBlurhash,
		Theme:          string(p.Theme),
		CoupleID:       p.CoupleID,
		PartnerID:      p.PartnerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toCoupleResponse(c domain.Couple) coupletsdk.CoupleResponse {
	return coupletsdk.CoupleResponse{
		ID:           c.ID,
		Partner1ID:   c.Partner1ID,
		Partner2ID:   c.Partner2ID,
		InvitedEmail: c.InvitedEmail,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		ActivatedAt:  c.ActivatedAt,
	}
}

func toInviteCodeResponse(c domain.InviteCode) coupletsdk.InviteCodeResponse {
	return coupletsdk.InviteCodeResponse{
		ID:        c.ID,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func toSessionResponse(s service.Session, now time.Time) coupletsdk.SessionResponse {
	return coupletsdk.SessionResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresIn:   int(s.ExpiresAt.Sub(now).Seconds()),
		ExpiresAt:   s.ExpiresAt,
		UserID:      s.UserID,
	}
}
