package room

import (
	"encoding/json"

	"github.com/wavely/chat-service/internal/domain"
	"github.com/wavely/chat-service/pkg/log"
	"github.com/wavely/chat-service/pkg/metrics"
)

// actor owns one room's state. It runs until the event channel is closed
// (process shutdown); bad input never stops the loop.
type actor struct {
	name     string
	events   <-chan any
	nextID   uint64
	members  map[uint64]*member
	presence PresenceSink
}

func (a *actor) run() {
	defer func() {
		if r := recover(); r != nil {
			l := log.L()
			l.Error().Str(log.FieldRoom, a.name).Any("panic", r).Msg("room actor terminated")
		}
	}()

	for ev := range a.events {
		switch ev := ev.(type) {
		case joinEvent:
			a.handleJoin(ev)
		case messageEvent:
			a.handleMessage(ev)
		case leaveEvent:
			a.remove(ev.memberID)
		}
	}
}

func (a *actor) handleJoin(ev joinEvent) {
	id := a.nextID
	a.nextID++
	a.members[id] = &member{user: ev.user, send: ev.send}
	ev.reply <- id

	metrics.ActiveMembers.Inc()
	a.presence.MemberJoined(a.name, id, ev.user)

	l := log.L()
	l.Info().
		Str(log.FieldRoom, a.name).
		Str(log.FieldUser, ev.user).
		Uint64(log.FieldMemberID, id).
		Msg("member joined")

	a.broadcast(domain.NewJoinedBroadcast(ev.user))
}

func (a *actor) handleMessage(ev messageEvent) {
	m, ok := a.members[ev.memberID]
	if !ok {
		// Sender already removed; drop silently.
		return
	}

	metrics.MessagesTotal.Inc()
	a.broadcast(domain.NewMessageBroadcast(m.user, ev.text))
}

// remove deletes the member, closes its send queue (the write pump then
// sends a close frame and exits) and announces the departure. A no-op for
// ids not present, which makes the leave path idempotent.
func (a *actor) remove(id uint64) {
	m, ok := a.members[id]
	if !ok {
		return
	}
	delete(a.members, id)
	metrics.ActiveMembers.Dec()
	a.presence.MemberLeft(a.name, id, m.user)
	close(m.send)

	l := log.L()
	l.Info().
		Str(log.FieldRoom, a.name).
		Str(log.FieldUser, m.user).
		Uint64(log.FieldMemberID, id).
		Msg("member left")

	a.broadcast(domain.NewLeftBroadcast(m.user))
}

// broadcast encodes once and enqueues the frame onto every member's send
// queue. Each enqueue is independent: a full queue marks that member dead
// and never blocks delivery to the others.
func (a *actor) broadcast(v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		l := log.L()
		l.Error().Str(log.FieldRoom, a.name).Err(err).Msg("broadcast encode failed")
		return
	}

	var dead []uint64
	for id, m := range a.members {
		select {
		case m.send <- frame:
		default:
			dead = append(dead, id)
		}
	}

	for _, id := range dead {
		metrics.ForcedDisconnectsTotal.Inc()
		l := log.L()
		l.Warn().
			Str(log.FieldRoom, a.name).
			Uint64(log.FieldMemberID, id).
			Msg("send queue full, disconnecting member")
		a.remove(id)
	}
}
