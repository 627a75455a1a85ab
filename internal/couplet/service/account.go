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
	"github.com/aussiebroadwan/couplet/pkg/cryptox"
	"github.com/aussiebroadwan/couplet/pkg/idx"
	"github.com/aussiebroadwan/couplet/pkg/jwtx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// MinPasswordLength is the shortest password SignUp accepts.
const MinPasswordLength = 6

// Session is a signed access token for one user.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	UserID      string
	Email       string
}

// AccountService creates accounts and signs users in.
type AccountService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Keys     *jwtx.KeyManager
	Issuer   string
	Audience []string

	// AccessTTL defaults to jwtx.DefaultAccessTokenTTL.
	AccessTTL time.Duration
	Now       func() time.Time
}

type signUpInput struct {
	Email       string       `json:"email" validate:"required,email,max=254"`
	DisplayName string       `json:"display_name" validate:"required,min=2,max=50"`
	AvatarURL   string       `json:"avatar_url" validate:"omitempty,url,max=2048"`
	Theme       domain.Theme `json:"theme" validate:"omitempty,oneof=light dark"`
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a user and its profile in one transaction. An empty theme
// becomes domain.DefaultTheme.
func (s *AccountService) SignUp(
	ctx context.Context,
	email string,
	password string,
	displayName string,
	avatarURL string,
	theme domain.Theme,
) (user domain.User, profile domain.Profile, err error) {
	ctx, span := startSpan(ctx, "AccountService.SignUp")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	in := signUpInput{
		Email:       NormalizeEmail(email),
		DisplayName: strings.TrimSpace(displayName),
		AvatarURL:   strings.TrimSpace(avatarURL),
		Theme:       theme,
	}
	if err := asValidationError(validate.Struct(in)); err != nil {
		logFailure(log, "sign up rejected", err)
		return domain.User{}, domain.Profile{}, err
	}
	if len(password) < MinPasswordLength {
		err = fmt.Errorf("%w: must be at least %d characters", ErrWeakCredential, MinPasswordLength)
		logFailure(log, "sign up rejected", err)
		return domain.User{}, domain.Profile{}, err
	}
	if in.Theme == "" {
		in.Theme = domain.DefaultTheme
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, domain.Profile{}, err
	}

	now := nowOr(s.Now)
	user = domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile = domain.Profile{
		ID:          user.ID,
		DisplayName: in.DisplayName,
		AvatarURL:   in.AvatarURL,
		Theme:       in.Theme,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.Profiles().CreateProfile(ctx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure(log, "sign up failed", err)
		return domain.User{}, domain.Profile{}, err
	}

	log.Info("account created", slog.String("user_id", user.ID))
	return user, profile, nil
}

// Authenticate checks email and password and issues a session.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (sess Session, err error) {
	ctx, span := startSpan(ctx, "AccountService.Authenticate")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("sign in for unknown email")
			return Session{}, ErrInvalidCredential
		}
		log.Error("failed to load user", slog.Any("error", err))
		return Session{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("sign in with wrong password", slog.String("user_id", user.ID))
			return Session{}, ErrInvalidCredential
		}
		log.Error("failed to verify password", slog.String("user_id", user.ID), slog.Any("error", err))
		return Session{}, err
	}

	span.SetAttributes(attribute.String("couplet.user_id", user.ID))
	return s.IssueSession(user)
}

// IssueSession signs an access token for user.
func (s *AccountService) IssueSession(user domain.User) (Session, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	now := nowOr(s.Now)

	claims := jwtx.NewAccessClaims(user.ID, user.Email, s.Issuer, s.Audience, ttl, now)
	token, err := s.Keys.Signer().Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign access token: %w", err)
	}
	return Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}
