// Package room implements the per-room coordination core: every room is
// owned by a single actor goroutine that serializes joins, leaves and
// message fan-out over one bounded event channel. Nothing outside the
// actor ever touches a room's membership table.
package room

// PresenceSink receives membership changes as the actor applies them.
// Calls are made from the actor goroutine and must not block.
type PresenceSink interface {
	MemberJoined(room string, memberID uint64, user string)
	MemberLeft(room string, memberID uint64, user string)
}

type nopPresence struct{}

func (nopPresence) MemberJoined(string, uint64, string) {}
func (nopPresence) MemberLeft(string, uint64, string)   {}

// member is one joined participant: a display name plus the send queue
// drained by that connection's write pump. Owned exclusively by the actor.
type member struct {
	user string
	send chan []byte
}

// Events consumed by the actor loop.

type joinEvent struct {
	user  string
	send  chan []byte
	reply chan uint64 // one-shot: the assigned member id
}

type messageEvent struct {
	memberID uint64
	text     string
}

type leaveEvent struct {
	memberID uint64
}

// Room is the handle held by connections. All methods funnel into the
// room's event channel; the channel is bounded and callers block when it
// is full (callers are internal connection goroutines, not raw input).
type Room struct {
	name   string
	events chan any
}

func newRoom(name string, queueSize int, presence PresenceSink) *Room {
	if queueSize <= 0 {
		queueSize = 100
	}
	if presence == nil {
		presence = nopPresence{}
	}

	r := &Room{
		name:   name,
		events: make(chan any, queueSize),
	}

	a := &actor{
		name:     name,
		events:   r.events,
		members:  make(map[uint64]*member),
		presence: presence,
	}
	go a.run()

	return r
}

func (r *Room) Name() string { return r.name }

// Join registers a participant and returns the assigned member id. The
// send channel is handed over to the actor, which closes it when the
// member is removed. Blocks until the actor has applied the join.
func (r *Room) Join(user string, send chan []byte) uint64 {
	reply := make(chan uint64, 1)
	r.events <- joinEvent{user: user, send: send, reply: reply}
	return <-reply
}

// SendText forwards one chat line from the given member. Attribution is
// resolved by the actor against its membership table; lines from ids no
// longer present are dropped.
func (r *Room) SendText(memberID uint64, text string) {
	r.events <- messageEvent{memberID: memberID, text: text}
}

// Leave removes the member and announces it to the remaining members.
// Safe to call more than once; applying a leave for an absent id is a no-op.
func (r *Room) Leave(memberID uint64) {
	r.events <- leaveEvent{memberID: memberID}
}
