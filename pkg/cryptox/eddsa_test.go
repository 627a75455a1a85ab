package cryptox_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/pkg/cryptox"
)

func TestGenerateEd25519Key(t *testing.T) {
	key, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	require.Len(t, key, ed25519.PrivateKeySize)

	pub := key.Public().(ed25519.PublicKey)
	sig := ed25519.Sign(key, []byte("hello"))
	require.True(t, ed25519.Verify(pub, []byte("hello"), sig))
}

func TestThumbprintStable(t *testing.T) {
	a, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	b, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	pa := a.Public().(ed25519.PublicKey)
	require.Equal(t, cryptox.Thumbprint(pa), cryptox.Thumbprint(pa))
	require.NotEqual(t, cryptox.Thumbprint(pa), cryptox.Thumbprint(b.Public().(ed25519.PublicKey)))
	require.Len(t, cryptox.Thumbprint(pa), 22)
}
