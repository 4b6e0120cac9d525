package httpx

import (
	"context"
	"time"
)

// Cache is the status-cache seam; redisx.Cache in production. Cache writes
// are best-effort — a miss just means the next read hits the database.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
