package http

import (
	"net/http"

	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
)

type InviteCodesHandler struct {
	PairingService *service.PairingService
}

// HandleGenerate godoc
//
//	@Summary		Generate Invite Code
//	@Description	Issues a new six character code valid for one hour. Any earlier live code of the caller is revoked.
//	@Tags			Invite Codes
//	@Produce		json
//	@Success		201	{object}	coupletsdk.InviteCodeResponse	"code, expires_at"
//	@Failure		409	{object}	coupletsdk.ErrorResponse		"already_paired"
//	@Security		BearerAuth
//	@Router			/v1/invite-codes [post].
func (h *InviteCodesHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	code, err := h.PairingService.GenerateInviteCode(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate invite code")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toInviteCodeResponse(code))
}

// HandleCurrent godoc
//
//	@Summary		Current Invite Code
//	@Description	Returns the caller's newest code while it is still redeemable.
//	@Tags			Invite Codes
//	@Produce		json
//	@Success		200	{object}	coupletsdk.InviteCodeResponse
//	@Failure		404	{object}	coupletsdk.ErrorResponse	"not_found"
//	@Security		BearerAuth
//	@Router			/v1/invite-codes/current [get].
func (h *InviteCodesHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	code, err := h.PairingService.GetCurrentInviteCode(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load invite code")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInviteCodeResponse(code))
}

// HandleAccept godoc
//
//	@Summary		Accept Invite Code
//	@Description	Redeems a partner's code (case-insensitive) and links both accounts into a couple.
//	@Tags			Invite Codes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coupletsdk.AcceptInviteCodeRequest	true	"Code to redeem"
//	@Success		200		{object}	coupletsdk.CoupleResponse
//	@Failure		400		{object}	coupletsdk.ErrorResponse	"validation_error, self_pairing"
//	@Failure		404		{object}	coupletsdk.ErrorResponse	"not_found"
//	@Failure		409		{object}	coupletsdk.ErrorResponse	"already_paired"
//	@Failure		410		{object}	coupletsdk.ErrorResponse	"expired"
//	@Failure		429		{object}	coupletsdk.ErrorResponse	"rate_limit_exceeded"
//	@Security		BearerAuth
//	@Router			/v1/invite-codes/accept [post].
func (h *InviteCodesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req coupletsdk.AcceptInviteCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	couple, err := h.PairingService.AcceptInviteCode(r.Context(), req.Code, uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to accept invite code")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCoupleResponse(couple))
}
