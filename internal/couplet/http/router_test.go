package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/internal/couplet/blob"
	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	couplethttp "github.com/aussiebroadwan/couplet/internal/couplet/http"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/internal/couplet/store/drivers/sqlite"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/cryptox"
	"github.com/aussiebroadwan/couplet/pkg/jwtx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.t.IsZero() {
		return time.Now()
	}
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type testServer struct {
	*httptest.Server
	clock *clock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "https://couplet.test", Audience: []string{"couplet"}})
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(nil)
	blobs, err := blob.Open(blob.Options{InMemory: true, PublicBaseURL: "http://" + srv.Listener.Addr().String() + "/media"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = blobs.Close() })

	logger := slogx.Discard()
	hub := events.NewHub(logger)
	clk := &clock{}
	linker := &service.Linker{Store: st, Now: clk.Now}

	r := couplethttp.NewRouter(km.KeySet, km.Verifier, "test", st, logger)
	r.AccountService = &service.AccountService{
		Store:    st,
		Hasher:   cryptox.NewPasswordHasher("pepper"),
		Keys:     km,
		Issuer:   "https://couplet.test",
		Audience: []string{"couplet"},
	}
	r.PairingService = &service.PairingService{Store: st, Linker: linker, Events: hub, Now: clk.Now}
	r.PartnerInviteService = &service.PartnerInviteService{Store: st, Linker: linker, Events: hub, Now: clk.Now}
	r.ProfileService = &service.ProfileService{Store: st, Blobs: blobs, Now: clk.Now}
	r.Hub = hub
	r.Blobs = blobs
	r.ApplyRoutes()

	srv.Config.Handler = r
	srv.Start()
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Shutdown)

	return &testServer{Server: srv, clock: clk}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, s.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func requireError(t *testing.T, resp *http.Response, status int, code string) coupletsdk.ErrorResponse {
	t.Helper()
	require.Equal(t, status, resp.StatusCode)
	body := decode[coupletsdk.ErrorResponse](t, resp)
	require.Equal(t, code, body.Error)
	return body
}

func (s *testServer) signUp(t *testing.T, email, name string) coupletsdk.SignUpResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/v1/accounts", "", coupletsdk.SignUpRequest{
		Email: email, Password: "secret1", DisplayName: name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[coupletsdk.SignUpResponse](t, resp)
}

func TestAccounts(t *testing.T) {
	s := newTestServer(t)

	alex := s.signUp(t, "alex@example.com", "Alex")
	require.NotEmpty(t, alex.AccessToken)
	require.Equal(t, "Bearer", alex.TokenType)
	require.Equal(t, "light", alex.Profile.Theme)
	require.Equal(t, alex.UserID, alex.Profile.ID)

	resp := s.do(t, http.MethodPost, "/v1/accounts", "", coupletsdk.SignUpRequest{
		Email: "ALEX@example.com", Password: "secret1", DisplayName: "Alex",
	})
	requireError(t, resp, http.StatusConflict, coupletsdk.ErrorCodeDuplicateEmail)

	resp = s.do(t, http.MethodPost, "/v1/accounts", "", coupletsdk.SignUpRequest{
		Email: "sam@example.com", Password: "123", DisplayName: "Sam",
	})
	requireError(t, resp, http.StatusBadRequest, coupletsdk.ErrorCodeWeakCredential)

	resp = s.do(t, http.MethodPost, "/v1/accounts", "", coupletsdk.SignUpRequest{
		Email: "bad", Password: "secret1", DisplayName: "S",
	})
	body := requireError(t, resp, http.StatusBadRequest, coupletsdk.ErrorCodeValidation)
	require.Contains(t, body.Details, "email")
	require.Contains(t, body.Details, "display_name")

	resp = s.do(t, http.MethodPost, "/v1/sessions", "", coupletsdk.SignInRequest{Email: "alex@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sess := decode[coupletsdk.SessionResponse](t, resp)
	require.Equal(t, alex.UserID, sess.UserID)
	require.Positive(t, sess.ExpiresIn)

	resp = s.do(t, http.MethodPost, "/v1/sessions", "", coupletsdk.SignInRequest{Email: "alex@example.com", Password: "nope-nope"})
	requireError(t, resp, http.StatusUnauthorized, coupletsdk.ErrorCodeInvalidCredential)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/v1/profile", "/v1/couple", "/v1/invite-codes/current", "/v1/partner-invites"} {
		resp := s.do(t, http.MethodGet, path, "", nil)
		requireError(t, resp, http.StatusUnauthorized, coupletsdk.ErrorCodeInvalidToken)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	}
	resp := s.do(t, http.MethodGet, "/v1/profile", "garbage", nil)
	requireError(t, resp, http.StatusUnauthorized, coupletsdk.ErrorCodeInvalidToken)
}

func TestInviteCodeFlow(t *testing.T) {
	s := newTestServer(t)
	alex := s.signUp(t, "alex@example.com", "Alex")
	sam := s.signUp(t, "sam@example.com", "Sam")
	kim := s.signUp(t, "kim@example.com", "Kim")

	resp := s.do(t, http.MethodGet, "/v1/invite-codes/current", alex.AccessToken, nil)
	requireError(t, resp, http.StatusNotFound, coupletsdk.ErrorCodeNotFound)

	resp = s.do(t, http.MethodPost, "/v1/invite-codes", alex.AccessToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code := decode[coupletsdk.InviteCodeResponse](t, resp)
	require.Len(t, code.Code, 6)
	require.Equal(t, time.Hour, code.ExpiresAt.Sub(code.CreatedAt))

	resp = s.do(t, http.MethodGet, "/v1/invite-codes/current", alex.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, code.Code, decode[coupletsdk.InviteCodeResponse](t, resp).Code)

	resp = s.do(t, http.MethodPost, "/v1/invite-codes/accept", sam.AccessToken, coupletsdk.AcceptInviteCodeRequest{Code: "no"})
	requireError(t, resp, http.StatusBadRequest, coupletsdk.ErrorCodeValidation)

	resp = s.do(t, http.MethodPost, "/v1/invite-codes/accept", alex.AccessToken, coupletsdk.AcceptInviteCodeRequest{Code: code.Code})
	requireError(t, resp, http.StatusBadRequest, coupletsdk.ErrorCodeSelfPairing)

	lower := bytes.ToLower([]byte(code.Code))
	resp = s.do(t, http.MethodPost, "/v1/invite-codes/accept", sam.AccessToken, coupletsdk.AcceptInviteCodeRequest{Code: string(lower)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	couple := decode[coupletsdk.CoupleResponse](t, resp)
	require.Equal(t, "active", couple.Status)

	resp = s.do(t, http.MethodPost, "/v1/invite-codes/accept", kim.AccessToken, coupletsdk.AcceptInviteCodeRequest{Code: code.Code})
	requireError(t, resp, http.StatusNotFound, coupletsdk.ErrorCodeNotFound)

	resp = s.do(t, http.MethodGet, "/v1/profile", alex.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[coupletsdk.ProfileResponse](t, resp)
	require.Equal(t, couple.ID, me.CoupleID)
	require.Equal(t, sam.UserID, me.PartnerID)

	resp = s.do(t, http.MethodGet, "/v1/couple", sam.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[coupletsdk.CoupleSummaryResponse](t, resp)
	require.Equal(t, alex.UserID, sum.Partner.ID)
	require.Zero(t, sum.DaysTogether)

	resp = s.do(t, http.MethodPost, "/v1/invite-codes", alex.AccessToken, nil)
	requireError(t, resp, http.StatusConflict, coupletsdk.ErrorCodeAlreadyPaired)
}

func TestExpiredInviteCode(t *testing.T) {
	s := newTestServer(t)
	alex := s.signUp(t, "alex@example.com", "Alex")
	sam := s.signUp(t, "sam@example.com", "Sam")

	t0 := time.Now().UTC()
	s.clock.Set(t0)
	resp := s.do(t, http.MethodPost, "/v1/invite-codes", alex.AccessToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code := decode[coupletsdk.InviteCodeResponse](t, resp)

	s.clock.Set(t0.Add(61 * time.Minute))
	resp = s.do(t, http.MethodPost, "/v1/invite-codes/accept", sam.AccessToken, coupletsdk.AcceptInviteCodeRequest{Code: code.Code})
	requireError(t, resp, http.StatusGone, coupletsdk.ErrorCodeExpired)

	resp = s.do(t, http.MethodGet, "/v1/invite-codes/current", alex.AccessToken, nil)
	requireError(t, resp, http.StatusNotFound, coupletsdk.ErrorCodeNotFound)
}

func TestAcceptIsRateLimited(t *testing.T) {
	s := newTestServer(t)
	sam := s.signUp(t, "sam@example.com", "Sam")

	var last *http.Response
	for range 10 {
		last = s.do(t, http.MethodPost, "/v1/invite-codes/accept", sam.AccessToken, coupletsdk.AcceptInviteCodeRequest{Code: "ZZZZZZ"})
		if last.StatusCode == http.StatusTooManyRequests {
			break
		}
		require.Equal(t, http.StatusNotFound, last.StatusCode)
	}
	requireError(t, last, http.StatusTooManyRequests, coupletsdk.ErrorCodeRateLimited)
	require.NotEmpty(t, last.Header.Get("Retry-After"))
}

func TestPartnerInvites(t *testing.T) {
	s := newTestServer(t)
	alex := s.signUp(t, "alex@example.com", "Alex")
	sam := s.signUp(t, "sam@example.com", "Sam")

	resp := s.do(t, http.MethodPost, "/v1/partner-invites", alex.AccessToken, coupletsdk.PartnerInviteRequest{Email: "Sam@Example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	invite := decode[coupletsdk.CoupleResponse](t, resp)
	require.Equal(t, "pending", invite.Status)

	resp = s.do(t, http.MethodGet, "/v1/partner-invites", sam.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[coupletsdk.PartnerInvitesResponse](t, resp)
	require.Len(t, list.Invites, 1)
	require.Equal(t, invite.ID, list.Invites[0].ID)

	resp = s.do(t, http.MethodPost, "/v1/partner-invites/"+invite.ID+"/accept", alex.AccessToken, nil)
	requireError(t, resp, http.StatusNotFound, coupletsdk.ErrorCodeNotFound)

	resp = s.do(t, http.MethodPost, "/v1/partner-invites/"+invite.ID+"/accept", sam.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "active", decode[coupletsdk.CoupleResponse](t, resp).Status)

	resp = s.do(t, http.MethodGet, "/v1/partner-invites", sam.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decode[coupletsdk.PartnerInvitesResponse](t, resp).Invites)
}

func TestProfileUpdateAndAvatar(t *testing.T) {
	s := newTestServer(t)
	alex := s.signUp(t, "alex@example.com", "Alex")

	resp := s.do(t, http.MethodPatch, "/v1/profile", alex.AccessToken, coupletsdk.UpdateProfileRequest{Theme: "dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[coupletsdk.ProfileResponse](t, resp)
	require.Equal(t, "dark", p.Theme)
	require.Equal(t, "Alex", p.DisplayName)

	resp = s.do(t, http.MethodPatch, "/v1/profile", alex.AccessToken, map[string]string{"colour": "red"})
	requireError(t, resp, http.StatusBadRequest, coupletsdk.ErrorCodeValidation)

	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	for y := range 80 {
		for x := range 80 {
			img.Set(x, y, color.RGBA{R: uint8(3 * x), G: uint8(3 * y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	pngData := buf.Bytes()

	req, err := http.NewRequest(http.MethodPut, s.URL+"/v1/profile/avatar", bytes.NewReader(pngData))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alex.AccessToken)
	req.Header.Set("Content-Type", "image/png")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p = decode[coupletsdk.ProfileResponse](t, resp)
	require.NotEmpty(t, p.AvatarBlurhash)
	require.Contains(t, p.AvatarURL, "/media/avatars/"+alex.UserID+"/")

	media, err := http.Get(p.AvatarURL)
	require.NoError(t, err)
	defer media.Body.Close()
	require.Equal(t, http.StatusOK, media.StatusCode)
	require.Equal(t, "image/png", media.Header.Get("Content-Type"))
	got, err := io.ReadAll(media.Body)
	require.NoError(t, err)
	require.Equal(t, pngData, got)

	missing := s.do(t, http.MethodGet, "/media/avatars/nope.png", "", nil)
	requireError(t, missing, http.StatusNotFound, coupletsdk.ErrorCodeNotFound)

	req, err = http.NewRequest(http.MethodPut, s.URL+"/v1/profile/avatar", bytes.NewReader([]byte("text")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alex.AccessToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	requireError(t, resp, http.StatusUnsupportedMediaType, coupletsdk.ErrorCodeUnsupportedMedia)
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", decode[coupletsdk.HealthResponse](t, resp).Status)

	resp = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decode[coupletsdk.HealthResponse](t, resp)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	resp = s.do(t, http.MethodGet, "/.well-known/jwks.json", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	jwks := decode[jwtx.JWKS](t, resp)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)

	resp = s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
