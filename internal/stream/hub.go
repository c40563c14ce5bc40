package stream

import (
	"context"
	"strings"
	"sync"

	"backend-shottracker/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "shots:"
	channelSuffix = ":events"
)

// Hub fans out per-user events to connected websocket clients. With Redis
// configured, events go through pub/sub so every instance sees them.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	log     logger.Logger
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		log:     logger.Named("stream"),
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, channelPrefix+"*"+channelSuffix)
		// Wait for the subscription so nothing published after NewHub is lost.
		if _, err := pubsub.Receive(ctx); err != nil {
			h.log.Warn(ctx, "redis subscribe failed, delivering locally", logger.Error(err))
			_ = pubsub.Close()
		} else {
			h.redis = redisClient
			h.pubsub = pubsub
			go h.forward(pubsub.Channel())
		}
	}
	return h
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		if _, registered := userClients[client]; !registered {
			return
		}
		delete(userClients, client)
		if len(userClients) == 0 {
			delete(h.clients, client.UserID)
		}
		close(client.Send)
	}
}

// Connected reports how many clients userID has on this instance.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast delivers payload to every client of userID.
func (h *Hub) Broadcast(ctx context.Context, userID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(ctx, redisChannel(userID), payload).Err()
		if err == nil {
			return
		}
		h.log.Error(ctx, "redis publish", logger.String("user_id", userID), logger.Error(err))
	}
	h.deliver(userID, payload)
}

// Publish encodes ev and broadcasts it to userID.
func (h *Hub) Publish(ctx context.Context, userID string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error(ctx, "encode event", logger.String("type", ev.Type), logger.Error(err))
		return
	}
	h.Broadcast(ctx, userID, payload)
}

// Close stops the Redis subscription.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			// slow consumer, drop
		}
	}
}

func (h *Hub) forward(msgs <-chan *redis.Message) {
	for msg := range msgs {
		userID := userIDFromChannel(msg.Channel)
		if userID == "" {
			continue
		}
		h.deliver(userID, []byte(msg.Payload))
	}
}

func redisChannel(userID string) string {
	return channelPrefix + userID + channelSuffix
}

func userIDFromChannel(ch string) string {
	// shots:{user}:events
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
