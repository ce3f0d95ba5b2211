package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Event is the payload pushed to a recipient's channel. It is a
// cache-invalidation hint, not the record; clients reconcile by re-querying
// the notification list.
type Event struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Sender  string `json:"sender"`
	Title   string `json:"title"`
}

// Publisher pushes per-user notification events for live delivery
type Publisher interface {
	Publish(ctx context.Context, userID uint, event Event) error
}

// ChannelFor returns the pub/sub channel name for a user. Only that user's
// sessions subscribe to it.
func ChannelFor(userID uint) string {
	return fmt.Sprintf("notification-%d", userID)
}

// RedisBridge delivers events over Redis pub/sub, one channel per user
type RedisBridge struct {
	rdb *redis.Client
}

// NewRedisBridge creates a RedisBridge on an established Redis client
func NewRedisBridge(rdb *redis.Client) *RedisBridge {
	return &RedisBridge{rdb: rdb}
}

// Publish sends the event to the user's channel. Delivery is best-effort;
// sessions that are not subscribed at this moment simply miss the hint.
func (b *RedisBridge) Publish(ctx context.Context, userID uint, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, ChannelFor(userID), payload).Err()
}

// Subscribe opens a subscription on the user's channel
func (b *RedisBridge) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return b.rdb.Subscribe(ctx, ChannelFor(userID))
}
