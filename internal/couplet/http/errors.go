package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/couplet/internal/couplet/service"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// writeServiceError maps a service error onto the JSON error taxonomy.
// Anything unrecognised is logged and reported as a server error with
// fallback as the description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, coupletsdk.ErrorCodeValidation, "Request validation failed", verr.Fields)
	case errors.Is(err, service.ErrWeakCredential):
		httpx.WriteError(w, http.StatusBadRequest, coupletsdk.ErrorCodeWeakCredential, err.Error(),
			map[string]string{"password": "is too weak"})
	case errors.Is(err, service.ErrInvalidCredential):
		httpx.WriteError(w, http.StatusUnauthorized, coupletsdk.ErrorCodeInvalidCredential, "Invalid email or password", nil)
	case errors.Is(err, service.ErrDuplicateEmail):
		httpx.WriteError(w, http.StatusConflict, coupletsdk.ErrorCodeDuplicateEmail, "Email is already registered", nil)
	case errors.Is(err, service.ErrInviteCodeNotFound):
		httpx.WriteError(w, http.StatusNotFound, coupletsdk.ErrorCodeNotFound, "Invite code not found", nil)
	case errors.Is(err, service.ErrInviteCodeExpired):
		httpx.WriteError(w, http.StatusGone, coupletsdk.ErrorCodeExpired, "Invite code has expired", nil)
	case errors.Is(err, service.ErrPartnerInviteNotFound):
		httpx.WriteError(w, http.StatusNotFound, coupletsdk.ErrorCodeNotFound, "Partner invite not found", nil)
	case errors.Is(err, service.ErrProfileNotFound):
		httpx.WriteError(w, http.StatusNotFound, coupletsdk.ErrorCodeNotFound, "Profile not found", nil)
	case errors.Is(err, service.ErrCoupleNotFound):
		httpx.WriteError(w, http.StatusNotFound, coupletsdk.ErrorCodeNotFound, "Not paired yet", nil)
	case errors.Is(err, service.ErrAlreadyPaired):
		httpx.WriteError(w, http.StatusConflict, coupletsdk.ErrorCodeAlreadyPaired, "Already paired", nil)
	case errors.Is(err, service.ErrSelfPairing):
		httpx.WriteError(w, http.StatusBadRequest, coupletsdk.ErrorCodeSelfPairing, "Cannot pair with yourself", nil)
	case errors.Is(err, service.ErrAvatarTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, coupletsdk.ErrorCodeTooLarge, "Avatar must be 5 MiB or smaller", nil)
	case errors.Is(err, service.ErrUnsupportedImage):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, coupletsdk.ErrorCodeUnsupportedMedia, "Avatar must be a JPEG, PNG, GIF or WebP image", nil)
	default:
		slogx.FromContext(r.Context()).Error(fallback, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, coupletsdk.ErrorCodeServerError, fallback, nil)
	}
}

func writeBadRequest(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, coupletsdk.ErrorCodeValidation, err.Error(), nil)
}

// userID reads the authenticated subject. Handlers only run behind
// AuthnMiddleware, so a missing subject is a wiring bug.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, coupletsdk.ErrorCodeInvalidToken, "Authentication required", nil)
	}
	return id, ok
}
