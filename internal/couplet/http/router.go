package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/couplet/api/couplet" // Swagger docs
	"github.com/aussiebroadwan/couplet/internal/couplet/blob"
	"github.com/aussiebroadwan/couplet/internal/couplet/events"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
	"github.com/aussiebroadwan/couplet/pkg/jwtx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store                store.Store
	AccountService       *service.AccountService
	PairingService       *service.PairingService
	PartnerInviteService *service.PartnerInviteService
	ProfileService       *service.ProfileService
	Hub                  *events.Hub
	Blobs                *blob.Store

	// Heartbeat overrides the event stream heartbeat interval.
	Heartbeat time.Duration
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfile()
	r.registerInviteCodes()
	r.registerPartnerInvites()
	r.registerEvents()
	r.registerMedia()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Couplet API
//	@version		0.1.0
//	@description	Pairs two accounts into a couple through short-lived invite codes or email invites.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/couplet
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{AccountService: r.AccountService}

	// Credential endpoints are limited by IP to slow down guessing.
	r.Mux.Handle("POST /v1/accounts",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("GET /v1/profile", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/profile", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/profile/avatar", r.secured(http.HandlerFunc(h.HandleAvatar), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/couple", r.secured(http.HandlerFunc(h.HandleCouple), httpx.LenientLimit))
}

func (r *Router) registerInviteCodes() {
	h := &InviteCodesHandler{PairingService: r.PairingService}

	r.Mux.Handle("POST /v1/invite-codes", r.secured(http.HandlerFunc(h.HandleGenerate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/invite-codes/current", r.secured(http.HandlerFunc(h.HandleCurrent), httpx.LenientLimit))

	// Codes are six characters, so redemption gets the strict limit.
	r.Mux.Handle("POST /v1/invite-codes/accept", r.secured(http.HandlerFunc(h.HandleAccept), httpx.StrictLimit))
}

func (r *Router) registerPartnerInvites() {
	h := &PartnerInvitesHandler{PartnerInviteService: r.PartnerInviteService}

	r.Mux.Handle("POST /v1/partner-invites", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/partner-invites", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/partner-invites/{id}/accept", r.secured(http.HandlerFunc(h.HandleAccept), httpx.ModerateLimit))
}

func (r *Router) registerEvents() {
	h := EventsHandler(&events.Handler{Hub: r.Hub, Heartbeat: r.Heartbeat})
	r.Mux.Handle("GET /v1/events", r.secured(h, httpx.LenientLimit))
}

func (r *Router) registerMedia() {
	r.Mux.Handle("GET /media/{path...}",
		httpx.Chain(MediaHandler(r.Blobs),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
