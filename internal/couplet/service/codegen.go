package service

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/pkg/idx"
	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

// maxCodeAttempts bounds regeneration when a fresh code collides with a
// live one.
const maxCodeAttempts = 5

// GenerateCode returns a random code of validatex.InviteCodeLength
// characters drawn from validatex.InviteCodeAlphabet.
func GenerateCode() (string, error) {
	code, err := gonanoid.Generate(validatex.InviteCodeAlphabet, validatex.InviteCodeLength)
	if err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return code, nil
}

// NewInviteCode builds an unsaved code for owner. Expiry is derived from the
// same instant as creation.
func NewInviteCode(gen func() (string, error), ownerID string, now time.Time) (domain.InviteCode, error) {
	if gen == nil {
		gen = GenerateCode
	}
	code, err := gen()
	if err != nil {
		return domain.InviteCode{}, err
	}
	now = now.UTC()
	return domain.InviteCode{
		ID:        idx.NewAt(now).String(),
		Code:      code,
		OwnerID:   ownerID,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.InviteCodeTTL),
	}, nil
}
