package room

import (
	"sync"

	"github.com/wavely/chat-service/pkg/metrics"
)

// Registry maps room names to live rooms, creating them on first
// reference. Rooms are never torn down; an empty room is just an idle
// goroutine and an empty map. The mutex guards only lookup/insert and is
// never held across an actor send.
type Registry struct {
	mu        sync.Mutex
	rooms     map[string]*Room
	queueSize int
	presence  PresenceSink
}

func NewRegistry(queueSize int, presence PresenceSink) *Registry {
	return &Registry{
		rooms:     make(map[string]*Room),
		queueSize: queueSize,
		presence:  presence,
	}
}

// Get returns the room for name, creating it (and starting its actor) on
// first reference.
func (g *Registry) Get(name string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	rm := g.rooms[name]
	if rm == nil {
		rm = newRoom(name, g.queueSize, g.presence)
		g.rooms[name] = rm
		metrics.ActiveRooms.Inc()
	}
	return rm
}

// Len reports how many rooms exist.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}
