package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, "notification-42", ChannelFor(42))
	assert.Equal(t, "notification-1", ChannelFor(1))
}

func TestPublishReachesSubscriber(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	bridge := NewRedisBridge(rdb)
	ctx := context.Background()

	sub := bridge.Subscribe(ctx, 42)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := Event{ID: "evt-1", Content: "Ada commented: nice work", Sender: "Ada", Title: "New comment"}
	require.NoError(t, bridge.Publish(ctx, 42, event))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received on subscriber channel")
	}
}

func TestPublishDoesNotCrossChannels(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	bridge := NewRedisBridge(rdb)
	ctx := context.Background()

	sub := bridge.Subscribe(ctx, 7)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, bridge.Publish(ctx, 8, Event{ID: "evt-2"}))

	select {
	case msg := <-sub.Channel():
		t.Fatalf("user 7 received a push meant for user 8: %s", msg.Payload)
	case <-time.After(200 * time.Millisecond):
	}
}
