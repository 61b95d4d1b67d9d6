package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/google/uuid"
)

const (
	analyticsCachePrefix = "analytics:"
	analyticsCacheTTL    = 30 * time.Second
)

// AnalyticsCache holds recently computed analytics snapshots. The snapshot
// itself is always derived from scratch; this is consumer-layer caching
// only, with a short TTL and explicit invalidation on every plan or
// expense mutation in the workspace.
type AnalyticsCache struct {
	client *Client
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *Client) *AnalyticsCache {
	return &AnalyticsCache{client: client}
}

// Get retrieves a cached snapshot for a workspace
func (c *AnalyticsCache) Get(ctx context.Context, workspaceID uuid.UUID) (*domain.AnalyticsSnapshot, error) {
	key := fmt.Sprintf("%s%s", analyticsCachePrefix, workspaceID.String())

	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var snapshot domain.AnalyticsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// Set caches a snapshot for a workspace
func (c *AnalyticsCache) Set(ctx context.Context, workspaceID uuid.UUID, snapshot *domain.AnalyticsSnapshot) error {
	key := fmt.Sprintf("%s%s", analyticsCachePrefix, workspaceID.String())

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return c.client.rdb.Set(ctx, key, data, analyticsCacheTTL).Err()
}

// Invalidate removes the cached snapshot for a workspace
func (c *AnalyticsCache) Invalidate(ctx context.Context, workspaceID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", analyticsCachePrefix, workspaceID.String())
	return c.client.rdb.Del(ctx, key).Err()
}
