package room

import (
	"sync"
	"testing"

	"github.com/wavely/chat-service/internal/domain"
)

func TestRegistryReturnsSameRoomForName(t *testing.T) {
	reg := NewRegistry(0, nil)

	lobby := reg.Get("lobby")
	if reg.Get("lobby") != lobby {
		t.Fatal("second lookup returned a different room")
	}
	if lobby.Name() != "lobby" {
		t.Fatalf("room name = %q, want lobby", lobby.Name())
	}
	if reg.Get("other") == lobby {
		t.Fatal("different names share a room")
	}
	if got := reg.Len(); got != 2 {
		t.Fatalf("registry holds %d rooms, want 2", got)
	}
}

func TestRegistryConcurrentCreate(t *testing.T) {
	reg := NewRegistry(0, nil)

	const n = 16
	rooms := make([]*Room, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rooms[i] = reg.Get("lobby")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if rooms[i] != rooms[0] {
			t.Fatal("concurrent lookups created distinct rooms")
		}
	}
	if got := reg.Len(); got != 1 {
		t.Fatalf("registry holds %d rooms, want 1", got)
	}
}

func TestRoomsAreIsolated(t *testing.T) {
	reg := NewRegistry(0, nil)
	roomA := reg.Get("a")
	roomB := reg.Get("b")

	alice := make(chan []byte, 16)
	aliceID := roomA.Join("alice", alice)
	bob := make(chan []byte, 16)
	bobID := roomB.Join("bob", bob)

	expectFrame(t, alice, domain.MsgTypeJoined, "alice", "")
	expectFrame(t, bob, domain.MsgTypeJoined, "bob", "")

	roomA.SendText(aliceID, "only for room a")

	// Bob must never see room a's traffic. His next frame is his own
	// echo, delivered after the cross-room message was fanned out.
	roomB.SendText(bobID, "probe")
	expectFrame(t, bob, domain.MsgTypeMessage, "bob", "probe")

	expectFrame(t, alice, domain.MsgTypeMessage, "alice", "only for room a")
}
