package coupletsdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

var validate = validatex.New()

// ============================================================================
// Invite codes
// ============================================================================

// GenerateInviteCode issues a fresh code for the signed-in user, revoking
// any earlier one.
func (s *Session) GenerateInviteCode(ctx context.Context) (*InviteCodeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invite-codes", nil)
	if err != nil {
		return nil, err
	}

	var code InviteCodeResponse
	if err := decodeJSON(resp, &code, http.StatusCreated); err != nil {
		return nil, err
	}
	return &code, nil
}

// GetCurrentInviteCode returns the user's active code, or ErrNotFound.
func (s *Session) GetCurrentInviteCode(ctx context.Context) (*InviteCodeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/invite-codes/current", nil)
	if err != nil {
		return nil, err
	}

	var code InviteCodeResponse
	if err := decodeJSON(resp, &code, http.StatusOK); err != nil {
		return nil, err
	}
	return &code, nil
}

// AcceptInviteCode redeems a partner's code. Input is trimmed and
// upper-cased; anything that is not six code characters fails locally
// with *ValidationError.
func (s *Session) AcceptInviteCode(ctx context.Context, code string) (*CoupleResponse, error) {
	code = validatex.NormalizeInviteCode(code)
	if err := validate.Var("code", code, "required,invitecode"); err != nil {
		return nil, asValidationError(err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invite-codes/accept", AcceptInviteCodeRequest{Code: code})
	if err != nil {
		return nil, err
	}

	var couple CoupleResponse
	if err := decodeJSON(resp, &couple, http.StatusOK); err != nil {
		return nil, err
	}
	return &couple, nil
}

// ============================================================================
// Partner invites
// ============================================================================

// InvitePartner sends an email invite. Inviting the same address twice
// returns the existing invite.
func (s *Session) InvitePartner(ctx context.Context, email string) (*CoupleResponse, error) {
	if err := validate.Var("email", email, "required,email"); err != nil {
		return nil, asValidationError(err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/partner-invites", PartnerInviteRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var invite CoupleResponse
	if err := decodeJSON(resp, &invite, http.StatusCreated); err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListPartnerInvites returns pending invites addressed to the user's email.
func (s *Session) ListPartnerInvites(ctx context.Context) ([]CoupleResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/partner-invites", nil)
	if err != nil {
		return nil, err
	}

	var out PartnerInvitesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invites, nil
}

// AcceptPartnerInvite activates the pending couple with id.
func (s *Session) AcceptPartnerInvite(ctx context.Context, id string) (*CoupleResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/partner-invites/"+url.PathEscape(id)+"/accept", nil)
	if err != nil {
		return nil, err
	}

	var couple CoupleResponse
	if err := decodeJSON(resp, &couple, http.StatusOK); err != nil {
		return nil, err
	}
	return &couple, nil
}
