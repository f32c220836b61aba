package realtime_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autoparts-service/internal/realtime"
	"autoparts-service/pkg/config"
	"autoparts-service/prometheus"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.Metrics.Prefix = "realtime_test"
	prometheus.InitMetrics(cfg)
	m.Run()
}

func dialHub(t *testing.T, hub *realtime.Hub) *websocket.Conn {
	t.Helper()
	e := echo.New()
	e.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens on the hub goroutine; give it a moment before
	// publishing, since missed events are never replayed.
	time.Sleep(100 * time.Millisecond)
	return conn
}

func TestPublishReachesConnectedClients(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	conn := dialHub(t, hub)
	second := dialHub(t, hub)

	hub.Publish(realtime.EventProductCreated, map[string]string{"name": "Oil Filter"})

	for _, c := range []*websocket.Conn{conn, second} {
		c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, message, err := c.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}

		var env realtime.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			t.Fatal(err)
		}
		if env.Event != "productCreated" {
			t.Errorf("want productCreated, got %q", env.Event)
		}
		data, ok := env.Data.(map[string]interface{})
		if !ok || data["name"] != "Oil Filter" {
			t.Errorf("unexpected payload: %v", env.Data)
		}
	}
}

func TestPublishDeletedCarriesRawID(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	conn := dialHub(t, hub)
	hub.Publish(realtime.EventProductDeleted, "64f0c2a9e13d5c0001a390b2")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var env realtime.Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		t.Fatal(err)
	}
	if env.Event != "productDeleted" || env.Data != "64f0c2a9e13d5c0001a390b2" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestPublishWithNoClientsDoesNotBlock(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop())
	go hub.Run()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(realtime.EventProductUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked with no connected clients")
	}
}
