package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
)

type AccountsHandler struct {
	AccountService *service.AccountService
}

// HandleSignUp godoc
//
//	@Summary		Create Account
//	@Description	Creates a user and its profile in one step and returns a session for it.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coupletsdk.SignUpRequest	true	"Account details"
//	@Success		201		{object}	coupletsdk.SignUpResponse	"session and profile"
//	@Failure		400		{object}	coupletsdk.ErrorResponse	"validation_error, weak_credential"
//	@Failure		409		{object}	coupletsdk.ErrorResponse	"duplicate_email"
//	@Failure		500		{object}	coupletsdk.ErrorResponse	"server_error"
//	@Router			/v1/accounts [post].
func (h *AccountsHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req coupletsdk.SignUpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	user, profile, err := h.AccountService.SignUp(ctx,
		req.Email,
		req.Password,
		req.DisplayName,
		req.AvatarURL,
		domain.Theme(req.Theme),
	)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create account")
		return
	}

	sess, err := h.AccountService.IssueSession(user)
	if err != nil {
		writeServiceError(w, r, err, "Failed to issue session")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, coupletsdk.SignUpResponse{
		SessionResponse: toSessionResponse(sess, time.Now()),
		Profile:         toProfileResponse(profile),
	})
}

// HandleSignIn godoc
//
//	@Summary		Sign In
//	@Description	Exchanges email and password for a bearer access token.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coupletsdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	coupletsdk.SessionResponse	"access_token, expires_at"
//	@Failure		400		{object}	coupletsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	coupletsdk.ErrorResponse	"invalid_credential"
//	@Failure		500		{object}	coupletsdk.ErrorResponse	"server_error"
//	@Router			/v1/sessions [post].
func (h *AccountsHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req coupletsdk.SignInRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, coupletsdk.ErrorCodeValidation, "email and password are required", nil)
		return
	}

	sess, err := h.AccountService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Failed to sign in")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess, time.Now()))
}
