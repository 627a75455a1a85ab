package jwtx

import (
	"crypto/ed25519"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/couplet/pkg/cryptox"
)

// KeyManager owns the signing key for an instance along with the KeySet
// and verifier built from it. Keys are generated in memory at start up, so
// every session token is invalidated by a restart.
type KeyManager struct {
	KeySet   *KeySet
	Verifier Verifier

	mu     sync.RWMutex
	signer Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string
	Leeway   time.Duration
	Now      func() time.Time
}

// NewEphemeralKeyManager generates a fresh Ed25519 key and wires up the
// matching KeySet and verifier.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	keyset := NewKeySet()
	km := &KeyManager{
		KeySet: keyset,
		Verifier: NewVerifierEdDSA(keyset, VerifyOptions{
			Issuer:   opts.Issuer,
			Audience: opts.Audience,
			Leeway:   opts.Leeway,
			Now:      opts.Now,
		}),
	}
	if err := km.Rotate(); err != nil {
		return nil, err
	}
	return km, nil
}

// Rotate generates a new signing key. Previously issued tokens keep
// verifying since old public keys stay in the KeySet.
func (km *KeyManager) Rotate() error {
	priv, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return err
	}
	kid := "couplet-" + cryptox.Thumbprint(priv.Public().(ed25519.PublicKey))
	signer, err := NewSignerEdDSA(kid, priv)
	if err != nil {
		return err
	}
	if err := km.KeySet.AddSigner(signer); err != nil {
		return fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}

	km.mu.Lock()
	km.signer = signer
	km.mu.Unlock()
	return nil
}

// Signer returns the current signing key.
func (km *KeyManager) Signer() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.signer
}

// IsReady reports whether keys are loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}
