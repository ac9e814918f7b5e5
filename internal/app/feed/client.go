package feed

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chirp/internal/app/session"
	"chirp/internal/pkg/logx"
	"chirp/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 512

	// CloseCodeLoggedOut tells the client its session was logged out.
	CloseCodeLoggedOut = 4001

	// CloseCodeSessionExpired tells the client its session outlived its expiry.
	CloseCodeSessionExpired = 4002

	// CloseCodeShutdown is sent to every client when the server stops.
	CloseCodeShutdown = websocket.CloseGoingAway
)

// Client is one WebSocket subscriber. The feed is one-way: inbound frames are read only to
// service control messages and are otherwise discarded.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	id        string
	sessionID string
	userID    int64
	expiresAt time.Time

	// queued outbound messages; closed by the hub.
	send chan []byte

	// set by the hub before send is closed.
	closeCode   int
	closeReason string

	logger zerolog.Logger
}

// NewClient binds conn to the identity held by sess.
func NewClient(hub *Hub, conn *websocket.Conn, sess *session.Session) *Client {
	id := randx.ClientID()

	return &Client{
		hub:       hub,
		conn:      conn,
		id:        id,
		sessionID: sess.ID,
		userID:    sess.UserID,
		expiresAt: sess.ExpiresAt,
		send:      make(chan []byte, 64),
		logger: logx.Logger().With().
			Str("client_id", id).
			Int64("user_id", sess.UserID).
			Logger(),
	}
}

// ReadPump services pongs and close frames until the connection ends, then leaves the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.remove(c)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}
	}
}

// WritePump drains the send channel to the connection and keeps the heartbeat going.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if c.sessionExpired() {
				c.writeClose(CloseCodeSessionExpired, "Session expired.")
				return
			}

			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage returns false when the WritePump loop should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if !ok {
		code := c.closeCode
		if code == 0 {
			code = websocket.CloseNormalClosure
		}
		c.writeClose(code, c.closeReason)
		return false
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

func (c *Client) writeClose(code int, reason string) {
	c.logger.Info().Int("close_code", code).Str("reason", reason).Msg("Closing feed connection.")

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason)); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to send close frame.")
	}
}

func (c *Client) sessionExpired() bool {
	return !c.expiresAt.IsZero() && time.Now().After(c.expiresAt)
}
