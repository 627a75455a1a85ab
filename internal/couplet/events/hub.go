package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/couplet/pkg/idx"
)

// clientBuffer is how many undelivered events a slow client may hold
// before new ones are dropped for it.
const clientBuffer = 32

// Client is one open stream belonging to a user.
type Client struct {
	ID          string
	UserID      string
	ConnectedAt time.Time
	Events      chan Event
	Done        chan struct{}
}

// Hub tracks connected clients per user and delivers events to them.
// Delivery never blocks the publisher.
type Hub struct {
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	clients  map[string]map[string]*Client // user id -> client id -> client
	shutdown bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		now:     time.Now,
		clients: make(map[string]map[string]*Client),
	}
}

// Connect registers a stream for userID. Callers must Disconnect it.
func (h *Hub) Connect(userID string) *Client {
	c := &Client{
		ID:          idx.New().String(),
		UserID:      userID,
		ConnectedAt: h.now(),
		Events:      make(chan Event, clientBuffer),
		Done:        make(chan struct{}),
	}

	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		close(c.Done)
		return c
	}
	byID, ok := h.clients[userID]
	if !ok {
		byID = make(map[string]*Client)
		h.clients[userID] = byID
	}
	byID[c.ID] = c
	h.mu.Unlock()

	h.logger.Info("event stream connected", "client_id", c.ID, "user_id", userID)
	return c
}

// Disconnect removes c. Safe to call more than once.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	byID := h.clients[c.UserID]
	_, ok := byID[c.ID]
	if ok {
		delete(byID, c.ID)
		if len(byID) == 0 {
			delete(h.clients, c.UserID)
		}
		close(c.Done)
	}
	h.mu.Unlock()

	if ok {
		h.logger.Info("event stream disconnected",
			"client_id", c.ID,
			"user_id", c.UserID,
			"duration", time.Since(c.ConnectedAt),
		)
	}
}

// Publish delivers e to every stream userID has open.
func (h *Hub) Publish(userID string, e Event) {
	if e.At.IsZero() {
		e.At = h.now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var delivered, dropped int
	for _, c := range h.clients[userID] {
		select {
		case c.Events <- e:
			delivered++
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("dropped events for slow client",
			"user_id", userID,
			"event_type", string(e.Type),
			"dropped", dropped,
		)
	}
	h.logger.Debug("event published", "user_id", userID, "event_type", string(e.Type), "delivered", delivered)
}

// ClientCount returns the number of open streams.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, byID := range h.clients {
		n += len(byID)
	}
	return n
}

// Shutdown closes every stream and rejects new ones.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.shutdown {
		return
	}
	h.shutdown = true
	for _, byID := range h.clients {
		for _, c := range byID {
			close(c.Done)
		}
	}
	h.clients = make(map[string]map[string]*Client)
	h.logger.Info("event hub shut down")
}
