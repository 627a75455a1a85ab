package http

import (
	"net/http"

	"github.com/aussiebroadwan/couplet/internal/couplet/events"
)

// EventsHandler godoc
//
//	@Summary		Event Stream
//	@Description	Server-Sent Events stream of couple.linked and partner_invite.received for the caller.
//	@Description	Browsers may pass the token as ?access_token= since EventSource cannot set headers.
//	@Tags			Events
//	@Produce		text/event-stream
//	@Success		200	{string}	string	"event stream"
//	@Failure		401	{object}	coupletsdk.ErrorResponse	"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/events [get].
func EventsHandler(h *events.Handler) http.Handler {
	return h
}
