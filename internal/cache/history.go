package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/atelierhq/atelier/internal/domain/assistant"
)

const (
	historyKeyPrefix = "assistant:history:"

	// Older exchanges beyond this are trimmed away
	historyMaxEntries = 50
)

// History stores per-project assistant exchanges in a Redis list, oldest
// first.
type History struct {
	client *redis.Client
}

// NewHistory creates a History store backed by the given Redis client
func NewHistory(client *redis.Client) *History {
	return &History{client: client}
}

// Append records an exchange at the end of the project's history
func (h *History) Append(ctx context.Context, projectID string, ex assistant.Exchange) error {
	data, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange: %w", err)
	}

	key := historyKeyPrefix + projectID
	if err := h.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	if err := h.client.LTrim(ctx, key, -historyMaxEntries, -1).Err(); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

// List returns the project's exchanges, oldest first
func (h *History) List(ctx context.Context, projectID string) ([]assistant.Exchange, error) {
	entries, err := h.client.LRange(ctx, historyKeyPrefix+projectID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	exchanges := make([]assistant.Exchange, 0, len(entries))
	for _, entry := range entries {
		var ex assistant.Exchange
		if err := json.Unmarshal([]byte(entry), &ex); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exchange: %w", err)
		}
		exchanges = append(exchanges, ex)
	}

	return exchanges, nil
}
