/*
Package feed pushes tweet changes to connected WebSocket clients.

This file defines the Hub, the single goroutine that owns the set of connected clients. It
handles registration, fan-out of published events, per-session disconnects on logout, and
shutdown. Every close of a client's send channel happens on the hub goroutine.
*/
package feed

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"chirp/internal/pkg/logx"
)

const broadcastChannelBuffer = 256

// Hub fans out events to every registered client.
type Hub struct {
	// clients is only touched by the run goroutine.
	clients map[*Client]struct{}

	register     chan *Client
	unregister   chan *Client
	broadcast    chan []byte
	closeSession chan string

	// stop asks run to exit; done is closed once it has.
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	count atomic.Int64

	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its run loop.
func NewHub() *Hub {
	h := &Hub{
		clients:      make(map[*Client]struct{}),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan []byte, broadcastChannelBuffer),
		closeSession: make(chan string),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
		logger:       logx.Logger().With().Str("component", "FeedHub").Logger(),
	}

	go h.run()

	return h
}

func (h *Hub) run() {
	defer close(h.done)

	h.logger.Info().Msg("Feed hub started.")

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			client.logger.Info().Int("total_clients", len(h.clients)).Msg("Client subscribed to feed.")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client, 0, "")
				client.logger.Info().Int("total_clients", len(h.clients)).Msg("Client left feed.")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					client.logger.Warn().Msg("Client send channel full, disconnecting.")
					h.drop(client, 0, "")
				}
			}

		case sessionID := <-h.closeSession:
			for client := range h.clients {
				if client.sessionID == sessionID {
					h.drop(client, CloseCodeLoggedOut, "Logged out.")
				}
			}

		case <-h.stop:
			for client := range h.clients {
				h.drop(client, CloseCodeShutdown, "Server shutting down.")
			}
			h.logger.Info().Msg("Feed hub stopped.")
			return
		}
	}
}

// drop removes client and closes its send channel. A non-zero code is sent as the close frame.
func (h *Hub) drop(client *Client, code int, reason string) {
	delete(h.clients, client)
	h.count.Store(int64(len(h.clients)))

	client.closeCode = code
	client.closeReason = reason
	close(client.send)
}

// Register adds client to the fan-out set. It returns false once the hub has shut down.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish sends an event to every connected client. Events are dropped, with a warning, when
// the hub is saturated or stopped.
func (h *Hub) Publish(eventType string, payload any) {
	messageBytes, err := json.Marshal(NewEvent(eventType, payload))
	if err != nil {
		h.logger.Error().Err(err).Str("event_type", eventType).Msg("Error marshaling feed event.")
		return
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- messageBytes:
	default:
		h.logger.Warn().Str("event_type", eventType).Msg("Broadcast channel full, dropping feed event.")
	}
}

// CloseSession disconnects every client opened under sessionID.
func (h *Hub) CloseSession(sessionID string) {
	if sessionID == "" {
		return
	}

	select {
	case h.closeSession <- sessionID:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Shutdown disconnects all clients and stops the hub. It is safe to call more than once.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		h.logger.Info().Msg("Shutting down feed hub...")
		close(h.stop)
	})
	<-h.done
}
