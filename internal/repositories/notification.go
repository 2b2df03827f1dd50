package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
	"github.com/sbilibin2017/qa-resolver/internal/models"
)

// feedLength caps how many notifications are retained per user.
const feedLength = 100

// NotificationRepository stores per-user notification feeds in Redis.
type NotificationRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewNotificationRepository creates a repository with the given feed TTL.
func NewNotificationRepository(client *redis.Client, expiration time.Duration) *NotificationRepository {
	return &NotificationRepository{client: client, exp: expiration}
}

func feedKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// Push prepends a notification to the target user's feed and trims it.
func (r *NotificationRepository) Push(ctx context.Context, n models.Notification) error {
	key := feedKey(n.UserID)

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, feedLength-1)
	pipe.Expire(ctx, key, r.exp)
	_, err = pipe.Exec(ctx)

	logger.Log.Infow("notification pushed",
		"key", key,
		"question_id", n.QuestionID,
		"error", err,
	)
	return err
}

// Recent returns the newest notifications for a user, most recent first.
func (r *NotificationRepository) Recent(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	key := feedKey(userID)

	values, err := r.client.LRange(ctx, key, 0, limit-1).Result()
	if err != nil {
		logger.Log.Infow("notification fetch failed", "key", key, "error", err)
		return nil, err
	}

	out := make([]models.Notification, 0, len(values))
	for _, v := range values {
		var n models.Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			logger.Log.Errorw("malformed notification entry dropped", "key", key, "error", err)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
