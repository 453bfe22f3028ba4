package domain

// WebSocket message types from client.
const (
	MsgTypeConnect     = "Connect"
	MsgTypeSendMessage = "SendMessage"
)

// WebSocket message types to client.
const (
	MsgTypeMessage = "Message"
	MsgTypeJoined  = "Joined"
	MsgTypeLeft    = "Left"
)

// BaseMessage is the base structure for all WebSocket frames.
// The "type" tag selects the concrete variant.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server frames

// ConnectMessage must be the first frame on every connection. It names
// the room to join and the display name to join under.
type ConnectMessage struct {
	Type string `json:"type"`
	Room string `json:"room"`
	User string `json:"user"`
}

// SendMessage carries one chat line from an already-joined member.
type SendMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Server -> Client frames

// MessageBroadcast delivers a chat line to every member of the room,
// the sender included.
type MessageBroadcast struct {
	Type string `json:"type"`
	User string `json:"user"`
	Text string `json:"text"`
}

// JoinedBroadcast announces a new member, delivered to the whole room
// including the member that just joined.
type JoinedBroadcast struct {
	Type string `json:"type"`
	User string `json:"user"`
}

// LeftBroadcast announces a departed member to the remaining members.
type LeftBroadcast struct {
	Type string `json:"type"`
	User string `json:"user"`
}

func NewMessageBroadcast(user, text string) *MessageBroadcast {
	return &MessageBroadcast{Type: MsgTypeMessage, User: user, Text: text}
}

func NewJoinedBroadcast(user string) *JoinedBroadcast {
	return &JoinedBroadcast{Type: MsgTypeJoined, User: user}
}

func NewLeftBroadcast(user string) *LeftBroadcast {
	return &LeftBroadcast{Type: MsgTypeLeft, User: user}
}
