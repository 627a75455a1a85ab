package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "couplet.db", cfg.DatabaseFile)
	require.Equal(t, 24*time.Hour, cfg.AccessTTL)
	require.Equal(t, 24*time.Hour, cfg.InviteCodeRetention)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Empty(t, cfg.OTelEndpoint)
	require.False(t, cfg.TrustProxyHeaders)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("COUPLET_PORT", "9090")
	t.Setenv("COUPLET_PUBLIC_URL", "https://couplet.example/")
	t.Setenv("COUPLET_ACCESS_TTL", "2h")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("COUPLET_TRUST_PROXY_HEADERS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.TrustProxyHeaders)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "https://couplet.example", cfg.PublicURL)
	require.Equal(t, 2*time.Hour, cfg.AccessTTL)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("COUPLET_PORT", "70000")
	t.Setenv("COUPLET_ACCESS_TTL", "-1s")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "COUPLET_PORT")
	require.Contains(t, err.Error(), "COUPLET_ACCESS_TTL")

	t.Setenv("COUPLET_PORT", "abc")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestNewWiresInMemoryApplication(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Port:                8080,
		DatabaseFile:        ":memory:",
		PublicURL:           "http://localhost:8080",
		Issuer:              "couplet-test",
		PepperFile:          dir + "/pepper",
		AccessTTL:           time.Hour,
		LogFormat:           "text",
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
	}

	app, err := New(cfg)
	require.NoError(t, err)
	app.housekeepingService.Start()

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, app.Shutdown())
}
