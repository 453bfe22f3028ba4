// Package hub bridges one websocket connection to the room core: a read
// pump decoding inbound frames and a write pump draining the send queue
// the room actor fills.
package hub

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/wavely/chat-service/internal/config"
	"github.com/wavely/chat-service/pkg/log"
)

type Client struct {
	ID   string // connection identity for logs, assigned pre-join
	Conn *websocket.Conn
	Send chan []byte
	cfg  config.WebSocketConfig
}

func NewClient(id string, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	size := cfg.SendQueueSize
	if size <= 0 {
		size = 100
	}
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, size),
		cfg:  cfg,
	}
}

// ReadPump reads frames until the connection fails or closes, passing
// each text frame to handler. done runs exactly once on exit, after the
// connection is closed; the caller uses it to emit the member's leave.
func (c *Client) ReadPump(handler func([]byte), done func()) {
	defer func() {
		c.Conn.Close()
		done()
	}()

	c.Conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		msgType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Debug().Str(log.FieldConnID, c.ID).Err(err).Msg("read failed")
			}
			return
		}
		if msgType != websocket.TextMessage {
			// Binary frames carry nothing in this protocol.
			continue
		}

		handler(message)
	}
}

// WritePump drains the send queue to the transport in enqueue order and
// keeps the connection alive with pings. It exits when the queue is
// closed (the room actor removed this member) or a write fails; either
// way it closes the connection, which unblocks the read pump.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
