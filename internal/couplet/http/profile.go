package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// HandleGet godoc
//
//	@Summary		Get Profile
//	@Description	Returns the caller's profile, including couple and partner ids once paired.
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	coupletsdk.ProfileResponse
//	@Failure		401	{object}	coupletsdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	coupletsdk.ErrorResponse	"not_found"
//	@Security		BearerAuth
//	@Router			/v1/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	p, err := h.ProfileService.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}

// HandleUpdate godoc
//
//	@Summary		Update Profile
//	@Description	Changes display name and/or theme. Omitted fields keep their value.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coupletsdk.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	coupletsdk.ProfileResponse
//	@Failure		400		{object}	coupletsdk.ErrorResponse	"validation_error"
//	@Failure		401		{object}	coupletsdk.ErrorResponse	"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/profile [patch].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req coupletsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.ProfileService.UpdateProfile(r.Context(), uid, req.DisplayName, domain.Theme(req.Theme))
	if err != nil {
		writeServiceError(w, r, err, "Failed to update profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}

// HandleAvatar godoc
//
//	@Summary		Upload Avatar
//	@Description	Stores the raw request body (JPEG, PNG, GIF or WebP, at most 5 MiB) as the caller's avatar.
//	@Tags			Profile
//	@Accept			image/jpeg,image/png,image/gif,image/webp
//	@Produce		json
//	@Success		200	{object}	coupletsdk.ProfileResponse	"avatar_url, avatar_blurhash"
//	@Failure		413	{object}	coupletsdk.ErrorResponse	"payload_too_large"
//	@Failure		415	{object}	coupletsdk.ErrorResponse	"unsupported_media_type"
//	@Security		BearerAuth
//	@Router			/v1/profile/avatar [put].
func (h *ProfileHandler) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, service.MaxAvatarBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeServiceError(w, r, service.ErrAvatarTooLarge, "")
			return
		}
		writeBadRequest(w, err)
		return
	}

	p, err := h.ProfileService.UploadAvatar(r.Context(), uid, data, r.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to upload avatar")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}

// HandleCouple godoc
//
//	@Summary		Couple Summary
//	@Description	Returns the caller's couple, the partner's profile and the number of days together.
//	@Tags			Couple
//	@Produce		json
//	@Success		200	{object}	coupletsdk.CoupleSummaryResponse
//	@Failure		404	{object}	coupletsdk.ErrorResponse	"not_found - not paired"
//	@Security		BearerAuth
//	@Router			/v1/couple [get].
func (h *ProfileHandler) HandleCouple(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	sum, err := h.ProfileService.GetCoupleSummary(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load couple")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, coupletsdk.CoupleSummaryResponse{
		Couple:       toCoupleResponse(sum.Couple),
		Partner:      toProfileResponse(sum.Partner),
		DaysTogether: sum.DaysTogether,
	})
}
