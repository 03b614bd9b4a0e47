package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const viewKeyPrefix = "views:"

// Views invalidates cached list views after mutations. Keys are logical
// view paths such as "clients" or "projects/<id>".
type Views struct {
	client *redis.Client
}

// NewViews creates a Views cache backed by the given Redis client
func NewViews(client *redis.Client) *Views {
	return &Views{client: client}
}

// Invalidate drops the cached entries for the given view keys
func (v *Views) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = viewKeyPrefix + key
	}

	if err := v.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate views: %w", err)
	}
	return nil
}
