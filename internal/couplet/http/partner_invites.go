package http

import (
	"net/http"

	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
)

type PartnerInvitesHandler struct {
	PartnerInviteService *service.PartnerInviteService
}

// HandleCreate godoc
//
//	@Summary		Invite Partner By Email
//	@Description	Opens a pending couple addressed to an email. Repeating the call returns the same invite.
//	@Tags			Partner Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coupletsdk.PartnerInviteRequest	true	"Invitee email"
//	@Success		201		{object}	coupletsdk.CoupleResponse		"pending couple"
//	@Failure		400		{object}	coupletsdk.ErrorResponse		"validation_error, self_pairing"
//	@Failure		409		{object}	coupletsdk.ErrorResponse		"already_paired"
//	@Security		BearerAuth
//	@Router			/v1/partner-invites [post].
func (h *PartnerInvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req coupletsdk.PartnerInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	couple, err := h.PartnerInviteService.InvitePartner(r.Context(), uid, req.Email)
	if err != nil {
		writeServiceError(w, r, err, "Failed to invite partner")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCoupleResponse(couple))
}

// HandleList godoc
//
//	@Summary		Pending Partner Invites
//	@Description	Lists open invites addressed to the caller's email.
//	@Tags			Partner Invites
//	@Produce		json
//	@Success		200	{object}	coupletsdk.PartnerInvitesResponse
//	@Security		BearerAuth
//	@Router			/v1/partner-invites [get].
func (h *PartnerInvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	invites, err := h.PartnerInviteService.ListPendingInvites(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list partner invites")
		return
	}

	resp := coupletsdk.PartnerInvitesResponse{Invites: make([]coupletsdk.CoupleResponse, 0, len(invites))}
	for _, c := range invites {
		resp.Invites = append(resp.Invites, toCoupleResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleAccept godoc
//
//	@Summary		Accept Partner Invite
//	@Description	Activates a pending couple addressed to the caller and links both profiles.
//	@Tags			Partner Invites
//	@Produce		json
//	@Param			id	path		string	true	"Invite (couple) id"
//	@Success		200	{object}	coupletsdk.CoupleResponse
//	@Failure		404	{object}	coupletsdk.ErrorResponse	"not_found"
//	@Failure		409	{object}	coupletsdk.ErrorResponse	"already_paired"
//	@Security		BearerAuth
//	@Router			/v1/partner-invites/{id}/accept [post].
func (h *PartnerInvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	couple, err := h.PartnerInviteService.AcceptPartnerInvite(r.Context(), r.PathValue("id"), uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to accept partner invite")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCoupleResponse(couple))
}
