package feed

import (
	"time"

	"chirp/internal/pkg/randx"
)

// Event is one live feed message as sent to clients.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewEvent stamps payload with a fresh id and the current time.
func NewEvent(eventType string, payload any) Event {
	return Event{
		ID:        randx.ClientID(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}
