package service

import (
	"errors"

	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

var (
	// ErrValidation matches every *ValidationError through errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrInviteCodeNotFound = errors.New("invite code not found")
	ErrInviteCodeExpired  = errors.New("invite code expired")

	ErrAlreadyPaired   = errors.New("already paired")
	ErrSelfPairing     = errors.New("cannot pair with yourself")
	ErrProfileNotFound = errors.New("profile not found")
	ErrCoupleNotFound  = errors.New("couple not found")

	ErrPartnerInviteNotFound = errors.New("partner invite not found")

	ErrDuplicateEmail    = errors.New("email already registered")
	ErrWeakCredential    = errors.New("password too weak")
	ErrInvalidCredential = errors.New("invalid email or password")

	ErrAvatarTooLarge   = errors.New("avatar exceeds size limit")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields validatex.FieldErrors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: validatex.FieldErrors{field: msg}}
}

// asValidationError lifts validatex.FieldErrors into a *ValidationError and
// passes anything else through.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fe validatex.FieldErrors
	if errors.As(err, &fe) {
		return &ValidationError{Fields: fe}
	}
	return err
}

var validate = validatex.New()
