package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides webhook delivery idempotency checks backed by Redis.
// Key format: dedup:<delivery_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this delivery has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, deliveryID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(deliveryID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this delivery has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, deliveryID string) error {
	return d.client.Set(ctx, d.key(deliveryID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(deliveryID string) string {
	return "dedup:" + deliveryID
}
