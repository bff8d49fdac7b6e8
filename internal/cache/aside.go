package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Aside implements the cache-aside pattern: it tries to load the value at key
// into dest, and on a miss calls fill (which must populate dest), then stores
// dest under key with the given TTL. When no Redis client is configured every
// call goes straight to fill.
//
// Cache errors are swallowed so the database stays the source of truth; the
// metrics hook on the client records them.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	if client != nil {
		data, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(data, dest); jsonErr == nil {
				return nil
			}
			// Corrupt entry, drop it and fall through to fill
			client.Del(ctx, key)
		}
	}

	if err := fill(); err != nil {
		return err
	}

	if client != nil {
		if data, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, data, ttl)
		}
	}
	return nil
}
