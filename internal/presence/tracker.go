// Package presence mirrors live room membership into redis so operators
// can see who is where. Tracking is best-effort and fully decoupled from
// the room actors: updates go through a bounded queue and are dropped,
// not blocked on, when redis is slow or down.
package presence

// Tracker records membership changes. Implementations must not block the
// caller; the room actor invokes these inline.
type Tracker interface {
	MemberJoined(room string, memberID uint64, user string)
	MemberLeft(room string, memberID uint64, user string)
	Close() error
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) MemberJoined(string, uint64, string) {}
func (Noop) MemberLeft(string, uint64, string)   {}
func (Noop) Close() error                        { return nil }
