// Package lock candado distribuido sobre Redis.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/pkg/config"
)

// Solo borra la llave si el token coincide (no libera el candado de otro proceso).
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var _ ports.Locker = (*RedisLocker)(nil)

// RedisLocker SET NX PX con token aleatorio.
type RedisLocker struct {
	client redis.UniversalClient
	script *redis.Script
}

// NewRedisClient cliente desde la configuración.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisLocker construye el candado.
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client, script: redis.NewScript(releaseScript)}
}

// TryLock intenta tomar key por ttl.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("lock: key vacía")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock: ttl debe ser positivo")
	}
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Release libera key si token sigue siendo el dueño.
func (l *RedisLocker) Release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}
