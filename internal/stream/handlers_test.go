package stream

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
)

// fakeAuth accepts any bearer token and uses it as the user id.
func fakeAuth(c *fiber.Ctx) error {
	const prefix = "Bearer "
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) <= len(prefix) {
		return fiber.ErrUnauthorized
	}
	c.Locals("user_id", h[len(prefix):])
	return c.Next()
}

func serve(t *testing.T, hub *Hub) string {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub, fakeAuth)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "ws://" + ln.Addr().String() + "/stream/ws"
}

func waitConnected(t *testing.T, hub *Hub, userID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.Connected(userID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients for %s, have %d", want, userID, hub.Connected(userID))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamHandlersUpgradeRequired(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), NewHub(nil), fakeAuth)

	req := httptest.NewRequest(http.MethodGet, "/stream/ws?token=user-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Fatalf("expected 426 for non-websocket request, got %d", resp.StatusCode)
	}
}

func TestStreamHandlersRequireToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), NewHub(nil), fakeAuth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/stream/ws", nil))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v %d", err, resp.StatusCode)
	}
}

func TestStreamHandlersWebsocketBroadcast(t *testing.T) {
	hub := NewHub(nil)
	url := serve(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=user-1", nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	waitConnected(t, hub, "user-1", 1)

	hub.Broadcast(context.Background(), "user-1", []byte("hello"))
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(msg) != "hello" {
		t.Fatalf("unexpected message %q", msg)
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	conn.Close()
	waitConnected(t, hub, "user-1", 0)
}

func TestStreamHandlersHeaderToken(t *testing.T) {
	hub := NewHub(nil)
	url := serve(t, hub)

	header := http.Header{}
	header.Set("Authorization", "Bearer user-9")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	waitConnected(t, hub, "user-9", 1)
	conn.Close()
	waitConnected(t, hub, "user-9", 0)
}
