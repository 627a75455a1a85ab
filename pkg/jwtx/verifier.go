package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures what a verifier expects of a token.
type VerifyOptions struct {
	// Issuer the token must carry. Empty skips the check.
	Issuer string
	// Audience values of which at least one must be present.
	Audience []string
	// Leeway for exp/nbf clock skew.
	Leeway time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// EdDSAVerifier validates Ed25519 signed tokens against a KeySet.
type EdDSAVerifier struct {
	keys *KeySet
	opts VerifyOptions
}

func NewVerifierEdDSA(keys *KeySet, opts VerifyOptions) *EdDSAVerifier {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &EdDSAVerifier{keys: keys, opts: opts}
}

func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	// Expiry is checked below with our own clock so tests can drive it.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMalformed
		}
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		if errors.Is(err, ErrUnknownKID) {
			return Claims{}, err
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.opts.Now().UTC(), v.opts.Leeway); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
