package audit

import (
	"github.com/wavely/chat-service/pkg/log"
)

// Audit actions for the chat server.
const (
	ActionReject     = "chat.reject"
	ActionJoin       = "chat.join"
	ActionDisconnect = "chat.disconnect"
)

const fieldAction = "action"

// Log emits a structured audit entry for a connection-scoped event.
func Log(action, connID, room, user, msg string) {
	l := log.L()
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(fieldAction, action).
		Str(log.FieldConnID, connID).
		Str(log.FieldRoom, room).
		Str(log.FieldUser, user).
		Msg(msg)
}
