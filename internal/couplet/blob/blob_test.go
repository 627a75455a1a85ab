package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/blob"
)

func newStore(t *testing.T) *blob.Store {
	t.Helper()
	s, err := blob.Open(blob.Options{InMemory: true, PublicBaseURL: "https://couplet.test/media/"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUploadOpenDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	p, err := s.Upload(ctx, "/avatars/u1/a.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "avatars/u1/a.png", p)

	data, info, err := s.Open(ctx, p)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
	require.Equal(t, "image/png", info.ContentType)
	require.Equal(t, 9, info.Size)

	require.NoError(t, s.Delete(ctx, p))
	_, _, err = s.Open(ctx, p)
	require.ErrorIs(t, err, blob.ErrNotFound)
}

func TestUploadDefaultsContentType(t *testing.T) {
	s := newStore(t)
	p, err := s.Upload(context.Background(), "x/y", []byte{1}, "")
	require.NoError(t, err)
	_, info, err := s.Open(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", info.ContentType)
}

func TestPathsCannotEscape(t *testing.T) {
	s := newStore(t)
	for _, p := range []string{"", "  ", "../etc/passwd", "a/../../b", `a\b`, "/"} {
		_, err := s.Upload(context.Background(), p, []byte("x"), "text/plain")
		require.ErrorIs(t, err, blob.ErrInvalidPath, p)
	}
}

func TestPublicURL(t *testing.T) {
	s := newStore(t)
	require.Equal(t, "https://couplet.test/media/avatars/u1/a.png", s.PublicURL("avatars/u1/a.png"))
}
