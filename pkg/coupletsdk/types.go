package coupletsdk

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/couplet/pkg/jwtx"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Details          map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Accounts
// ============================================================================

// SignUpRequest is the body of POST /v1/accounts.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Theme       string `json:"theme,omitempty"`
}

// SignInRequest is the body of POST /v1/sessions.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries a bearer access token.
type SessionResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
}

// SignUpResponse is the session plus the profile created with the account.
type SignUpResponse struct {
	SessionResponse
	Profile ProfileResponse `json:"profile"`
}

// ============================================================================
// Profiles and couples
// ============================================================================

type ProfileResponse struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	AvatarBlurhash string    `json:"avatar_blurhash,omitempty"`
	Theme          string    `json:"theme"`
	CoupleID       string    `json:"couple_id,omitempty"`
	PartnerID      string    `json:"partner_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Paired reports whether the profile belongs to a couple.
func (p ProfileResponse) Paired() bool { return p.CoupleID != "" }

// UpdateProfileRequest is the body of PATCH /v1/profile. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	Theme       string `json:"theme,omitempty"`
}

type CoupleResponse struct {
	ID           string     `json:"id"`
	Partner1ID   string     `json:"partner1_id"`
	Partner2ID   string     `json:"partner2_id,omitempty"`
	InvitedEmail string     `json:"invited_email,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
}

type CoupleSummaryResponse struct {
	Couple       CoupleResponse  `json:"couple"`
	Partner      ProfileResponse `json:"partner"`
	DaysTogether int             `json:"days_together"`
}

// ============================================================================
// Invite codes
// ============================================================================

type InviteCodeResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AcceptInviteCodeRequest is the body of POST /v1/invite-codes/accept.
type AcceptInviteCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Partner invites
// ============================================================================

// PartnerInviteRequest is the body of POST /v1/partner-invites.
type PartnerInviteRequest struct {
	Email string `json:"email"`
}

type PartnerInvitesResponse struct {
	Invites []CoupleResponse `json:"invites"`
}

// ============================================================================
// Events
// ============================================================================

// Event is one frame of the /v1/events stream. Data is left raw so callers
// decode only the types they care about.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	At   time.Time       `json:"at"`
}

const (
	EventCoupleLinked          = "couple.linked"
	EventPartnerInviteReceived = "partner_invite.received"

	// Stream housekeeping frames. Subscribe filters these out.
	eventConnected = "connected"
	eventHeartbeat = "heartbeat"
)

// CoupleLinkedData is the payload of EventCoupleLinked.
type CoupleLinkedData struct {
	CoupleID  string `json:"couple_id"`
	PartnerID string `json:"partner_id"`
}

// PartnerInviteReceivedData is the payload of EventPartnerInviteReceived.
type PartnerInviteReceivedData struct {
	InviteID  string `json:"invite_id"`
	InviterID string `json:"inviter_id"`
}

// ============================================================================
// Health and discovery
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the document served at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
