package lock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/impactmap/internal/config"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("lock",
	fx.Provide(New),
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker serializes work on a key across callers.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle `optional:"true"`
	Config    config.Config
	Log       *zap.Logger
}

// New returns a Redis-backed locker when REDIS_ADDR is configured and an
// in-process keyed mutex otherwise.
func New(p Params) Locker {
	log := p.Log.Named("lock")
	addr := strings.TrimSpace(p.Config.RedisAddr)
	if addr == "" {
		log.Info("using in-process user lock")
		return NewLocal()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
	})
	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}

	ttl := time.Duration(p.Config.LockTTLSecond) * time.Second
	log.Info("using redis user lock", zap.String("addr", addr), zap.Duration("ttl", ttl))
	return NewRedis(client, ttl, log)
}

// Local is an in-process keyed mutex. Entries are dropped once no caller holds
// or waits on the key.
type Local struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

func NewLocal() *Local {
	return &Local{locks: make(map[string]*localEntry)}
}

func (l *Local) Acquire(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, errors.New("lock key is empty")
	}

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &localEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			l.unref(key, entry)
		})
	}, nil
}

func (l *Local) unref(key string, entry *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}

// Redis is a SET NX lock with token-checked release.
type Redis struct {
	client     *redis.Client
	script     *redis.Script
	ttl        time.Duration
	retryDelay time.Duration
	log        *zap.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, log *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{
		client:     client,
		script:     redis.NewScript(lockReleaseScript),
		ttl:        ttl,
		retryDelay: 25 * time.Millisecond,
		log:        log,
	}
}

func (l *Redis) TryLock(ctx context.Context, key string) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, errors.New("lock client not configured")
	}
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Acquire polls until the key is free, the context ends, or the lock TTL
// elapses without success.
func (l *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	deadline := time.Now().Add(l.ttl)
	for {
		token, ok, err := l.TryLock(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := l.Release(releaseCtx, key, token); err != nil {
					l.log.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, obsmetrics.ErrLockUnavailable
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *Redis) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}

// UserKey namespaces the recompute lock for a volunteer.
func UserKey(userID string) string {
	return "impactmap:lock:user:" + userID
}
