package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wavely/chat-service/internal/audit"
	"github.com/wavely/chat-service/internal/config"
	"github.com/wavely/chat-service/internal/domain"
	"github.com/wavely/chat-service/internal/hub"
	"github.com/wavely/chat-service/internal/room"
	"github.com/wavely/chat-service/pkg/log"
	"github.com/wavely/chat-service/pkg/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	rooms *room.Registry
	wsCfg config.WebSocketConfig
}

func NewWSHandler(rooms *room.Registry, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		rooms: rooms,
		wsCfg: wsCfg,
	}
}

// HandleWebSocket upgrades the connection and runs the pre-join
// handshake: the first frame must be a Connect naming a room and a user.
// Anything else closes the connection without touching any room state.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l := log.L()
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	metrics.ConnectionsTotal.Inc()
	connID := uuid.New().String()

	l := log.L()
	l.Debug().Str(log.FieldConnID, connID).Str(log.FieldRemote, conn.RemoteAddr().String()).Msg("connection accepted")

	connect, err := h.readConnect(conn)
	if err != nil {
		l.Warn().Str(log.FieldConnID, connID).Err(err).Msg("handshake failed")
		audit.Log(audit.ActionReject, connID, "", "", "handshake rejected")
		conn.Close()
		return
	}

	client := hub.NewClient(connID, conn, h.wsCfg)
	rm := h.rooms.Get(connect.Room)
	memberID := rm.Join(connect.User, client.Send)
	audit.Log(audit.ActionJoin, connID, connect.Room, connect.User, "joined room")

	go client.WritePump()
	go client.ReadPump(
		func(frame []byte) { h.handleFrame(rm, memberID, client, frame) },
		func() {
			rm.Leave(memberID)
			audit.Log(audit.ActionDisconnect, connID, connect.Room, connect.User, "connection closed")
		},
	)
}

// readConnect reads and validates the mandatory first frame.
func (h *WSHandler) readConnect(conn *websocket.Conn) (*domain.ConnectMessage, error) {
	conn.SetReadLimit(h.wsCfg.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(h.wsCfg.HandshakeWait))

	msgType, frame, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read handshake frame: %w", err)
	}
	if msgType != websocket.TextMessage {
		return nil, errors.New("handshake frame is not text")
	}

	var base domain.BaseMessage
	if err := json.Unmarshal(frame, &base); err != nil {
		return nil, fmt.Errorf("decode handshake frame: %w", err)
	}
	if base.Type != domain.MsgTypeConnect {
		return nil, fmt.Errorf("unexpected first frame type %q", base.Type)
	}

	var connect domain.ConnectMessage
	if err := json.Unmarshal(frame, &connect); err != nil {
		return nil, fmt.Errorf("decode connect frame: %w", err)
	}
	if connect.Room == "" || connect.User == "" {
		return nil, errors.New("connect requires room and user")
	}
	return &connect, nil
}

// handleFrame dispatches one post-join frame. Decode failures and unknown
// types are dropped; only transport errors end the connection.
func (h *WSHandler) handleFrame(rm *room.Room, memberID uint64, client *hub.Client, frame []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(frame, &base); err != nil {
		l := log.L()
		l.Debug().Str(log.FieldConnID, client.ID).Err(err).Msg("dropping undecodable frame")
		return
	}

	switch base.Type {
	case domain.MsgTypeSendMessage:
		var msg domain.SendMessage
		if err := json.Unmarshal(frame, &msg); err != nil {
			l := log.L()
			l.Debug().Str(log.FieldConnID, client.ID).Err(err).Msg("dropping malformed SendMessage")
			return
		}
		rm.SendText(memberID, msg.Text)

	default:
		l := log.L()
		l.Debug().Str(log.FieldConnID, client.ID).Str("frame_type", base.Type).Msg("dropping unknown frame type")
	}
}

func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/chat/ws", h.HandleWebSocket)
}
