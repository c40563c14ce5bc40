package stream

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/shot"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for message")
		return nil
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-1")
	other := hub.Register("user-2")
	defer hub.Unregister(client)
	defer hub.Unregister(other)

	hub.Broadcast(context.Background(), "user-1", []byte("hello"))

	if msg := receive(t, client); string(msg) != "hello" {
		t.Fatalf("unexpected message %q", msg)
	}
	select {
	case msg := <-other.Send:
		t.Fatalf("other user received %q", msg)
	default:
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "shots:abc:events" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if userIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected user id")
	}
	for _, bad := range []string{"bad", "shots::events", "tracking:abc:broadcast"} {
		if userIDFromChannel(bad) != "" {
			t.Fatalf("expected empty user id for %q", bad)
		}
	}
}

func TestUnregisterClosesOnce(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-2")
	hub.Unregister(client)
	hub.Unregister(client)
	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	if hub.Connected("user-2") != 0 {
		t.Fatalf("expected no clients left")
	}
}

func TestHubPublishEvent(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-1")
	defer hub.Unregister(client)

	rec := shot.Record{ID: 3, Date: calendar.MustParse("2024-06-01"), ZoneID: "Paint", Category: court.Paint, Makes: 5, Attempts: 10}
	hub.Publish(context.Background(), "user-1", ShotSaved(rec))

	var got struct {
		Type    string      `json:"type"`
		Payload shot.Record `json:"payload"`
	}
	if err := json.Unmarshal(receive(t, client), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != EventShotSaved || got.Payload.ID != 3 || got.Payload.Category != court.Paint {
		t.Fatalf("unexpected event: %+v", got)
	}

	hub.Publish(context.Background(), "user-1", GoalChanged(nil))
	if msg := string(receive(t, client)); msg != `{"type":"goal.changed","payload":{"goalPct":null}}` {
		t.Fatalf("unexpected goal event %s", msg)
	}
}

func TestHubRedisFanOut(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	// Two hubs on one Redis stand in for two API instances.
	a := NewHub(rdb)
	b := NewHub(rdb)
	defer a.Close()
	defer b.Close()

	onB := b.Register("user-redis")
	defer b.Unregister(onB)

	a.Broadcast(context.Background(), "user-redis", []byte("ping"))
	if msg := receive(t, onB); string(msg) != "ping" {
		t.Fatalf("unexpected message %q", msg)
	}

	if err := rdb.Publish(context.Background(), "shots:user-redis:events", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if msg := receive(t, onB); string(msg) != "pong" {
		t.Fatalf("unexpected message from redis %q", msg)
	}
}

func TestHubRedisUnavailableFallsBackToLocal(t *testing.T) {
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	server.Close()
	defer rdb.Close()

	hub := NewHub(rdb)
	client := hub.Register("user-bad")
	defer hub.Unregister(client)

	hub.Broadcast(context.Background(), "user-bad", []byte("ping"))
	if msg := receive(t, client); string(msg) != "ping" {
		t.Fatalf("expected local delivery, got %q", msg)
	}
}
