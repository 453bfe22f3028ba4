package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wavely/chat-service/internal/config"
	"github.com/wavely/chat-service/pkg/log"
)

type update struct {
	joined bool
	key    string
	user   string
}

// RedisTracker keeps one key per joined member, set with a TTL and
// refreshed by a heartbeat loop, so entries expire on their own if this
// process dies without deregistering.
type RedisTracker struct {
	client            *redis.Client
	prefix            string
	keyTTL            time.Duration
	heartbeatInterval time.Duration

	queue chan update

	mu          sync.Mutex
	managedKeys map[string]string // key -> user

	cancel context.CancelFunc
}

func NewRedisTracker(cfg config.RedisConfig) (*RedisTracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	workerCtx, stop := context.WithCancel(context.Background())
	t := &RedisTracker{
		client:            client,
		prefix:            cfg.PresencePrefix,
		keyTTL:            cfg.KeyTTL,
		heartbeatInterval: cfg.HeartbeatInterval,
		queue:             make(chan update, 256),
		managedKeys:       make(map[string]string),
		cancel:            stop,
	}

	go t.worker(workerCtx)
	go t.heartbeatLoop(workerCtx)

	return t, nil
}

func (t *RedisTracker) keyFor(room string, memberID uint64) string {
	return fmt.Sprintf("%s:room:%s:member:%d", t.prefix, room, memberID)
}

func (t *RedisTracker) MemberJoined(room string, memberID uint64, user string) {
	t.enqueue(update{joined: true, key: t.keyFor(room, memberID), user: user})
}

func (t *RedisTracker) MemberLeft(room string, memberID uint64, user string) {
	t.enqueue(update{key: t.keyFor(room, memberID), user: user})
}

func (t *RedisTracker) enqueue(u update) {
	select {
	case t.queue <- u:
	default:
		l := log.L()
		l.Warn().Str("key", u.key).Msg("presence queue full, dropping update")
	}
}

func (t *RedisTracker) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-t.queue:
			t.apply(ctx, u)
		}
	}
}

func (t *RedisTracker) apply(ctx context.Context, u update) {
	if u.joined {
		if err := t.client.Set(ctx, u.key, u.user, t.keyTTL).Err(); err != nil {
			l := log.L()
			l.Error().Str("key", u.key).Err(err).Msg("failed to register presence")
			return
		}
		t.mu.Lock()
		t.managedKeys[u.key] = u.user
		t.mu.Unlock()
		return
	}

	if err := t.client.Del(ctx, u.key).Err(); err != nil {
		l := log.L()
		l.Error().Str("key", u.key).Err(err).Msg("failed to deregister presence")
	}
	t.mu.Lock()
	delete(t.managedKeys, u.key)
	t.mu.Unlock()
}

func (t *RedisTracker) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(t.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.refreshKeys(ctx)
		}
	}
}

func (t *RedisTracker) refreshKeys(ctx context.Context) {
	t.mu.Lock()
	keys := make(map[string]string, len(t.managedKeys))
	for k, u := range t.managedKeys {
		keys[k] = u
	}
	t.mu.Unlock()

	for key, user := range keys {
		if err := t.client.Set(ctx, key, user, t.keyTTL).Err(); err != nil {
			l := log.L()
			l.Error().Str("key", key).Err(err).Msg("failed to refresh presence key")
		}
	}
}

func (t *RedisTracker) Close() error {
	t.cancel()
	return t.client.Close()
}
