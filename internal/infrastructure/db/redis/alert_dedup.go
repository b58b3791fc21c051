package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AlertDedup suppresses repeat budget alerts backed by Redis.
// Key format: alert:<budget_id>:<period_start_unix>
type AlertDedup struct {
	client *redis.Client
}

// NewAlertDedup creates an AlertDedup wrapping the given Redis client.
func NewAlertDedup(client *redis.Client) *AlertDedup {
	return &AlertDedup{client: client}
}

// AlreadySent reports whether an alert for this budget and period window
// was already recorded.
func (d *AlertDedup) AlreadySent(ctx context.Context, budgetID string, periodStart time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(budgetID, periodStart)).Result()
	if err != nil {
		return false, fmt.Errorf("alert dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkSent records the alert; the entry expires with the period window.
func (d *AlertDedup) MarkSent(ctx context.Context, budgetID string, periodStart time.Time, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(budgetID, periodStart), "1", ttl).Err()
}

func (d *AlertDedup) key(budgetID string, periodStart time.Time) string {
	return fmt.Sprintf("alert:%s:%d", budgetID, periodStart.Unix())
}
