package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	AuditStream       = "caredesk:audit"
	AuditStreamMaxLen = 10000
)

// AuditLog appends domain events to a capped redis stream.
type AuditLog struct {
	redis  *redis.Client
	stream string
	maxLen int64
	now    func() time.Time
}

func NewAuditLog(r *redis.Client) *AuditLog {
	return &AuditLog{
		redis:  r,
		stream: AuditStream,
		maxLen: AuditStreamMaxLen,
		now:    time.Now,
	}
}

func (a *AuditLog) Append(ctx context.Context, event string, userID int64, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("audit marshal failed: %w", err)
	}

	id, err := a.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: a.stream,
		Values: map[string]any{
			"event":       event,
			"user_id":     userID,
			"data":        data,
			"recorded_at": a.now().UTC().Format(time.RFC3339Nano),
		},
		MaxLen: a.maxLen,
		Approx: true,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("audit xadd failed: %w", err)
	}

	return id, nil
}

// Trim drops stream entries recorded before cutoff.
func (a *AuditLog) Trim(ctx context.Context, cutoff time.Time) (int64, error) {
	minID := fmt.Sprintf("%d-0", cutoff.UnixMilli())

	removed, err := a.redis.XTrimMinID(ctx, a.stream, minID).Result()
	if err != nil {
		return 0, fmt.Errorf("audit xtrim failed: %w", err)
	}

	return removed, nil
}
