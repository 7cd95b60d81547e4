package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

const dedupTTL = 24 * time.Hour

// DedupChecker remembers which audit events were already stored.
// Key format: dedup:<resource>:<id>:<action>:<unix_nano>
type DedupChecker struct {
	client *redis.Client
}

func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

func (d *DedupChecker) IsDuplicate(ctx context.Context, event domain.LifecycleEvent) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(event)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the event as stored; the key expires after dedupTTL.
func (d *DedupChecker) Mark(ctx context.Context, event domain.LifecycleEvent) error {
	return d.client.Set(ctx, dedupKey(event), "1", dedupTTL).Err()
}

func dedupKey(e domain.LifecycleEvent) string {
	return fmt.Sprintf("dedup:%s:%s:%d", e.Key(), e.Action, e.OccurredAt.UnixNano())
}
