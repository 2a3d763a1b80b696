package ports

import (
	"context"
	"time"
)

// Locker candado distribuido con expiración. TryLock devuelve un token que debe
// pasarse a Release; ok=false si otro proceso tiene el candado.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}
