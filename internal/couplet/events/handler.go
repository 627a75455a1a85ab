package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/couplet/pkg/httpx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// DefaultHeartbeat is how often an idle stream gets a heartbeat frame.
const DefaultHeartbeat = 25 * time.Second

// Handler serves a user's event stream. It must sit behind
// httpx.AuthnMiddleware.
type Handler struct {
	Hub       *Hub
	Heartbeat time.Duration
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "authentication required", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Subscribe before the headers go out so nothing published after the
	// caller sees 200 is missed.
	client := h.Hub.Connect(userID)
	defer h.Hub.Disconnect(client)
	log = log.With(slog.String("client_id", client.ID))

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		log.Error("event stream: flush unsupported", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "streaming not supported", nil)
		return
	}

	if err := writeEvent(rc, w, Event{Type: TypeConnected, Data: map[string]string{"client_id": client.ID}, At: time.Now().UTC()}); err != nil {
		return
	}

	interval := h.Heartbeat
	if interval <= 0 {
		interval = DefaultHeartbeat
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case e := <-client.Events:
			if err := writeEvent(rc, w, e); err != nil {
				log.Info("event stream: client went away", "err", err)
				return
			}
		case <-ticker.C:
			if err := writeEvent(rc, w, Event{Type: TypeHeartbeat, At: time.Now().UTC()}); err != nil {
				return
			}
		case <-client.Done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(rc *http.ResponseController, w http.ResponseWriter, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
		return err
	}
	return rc.Flush()
}
