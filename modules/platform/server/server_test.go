package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/logger"
	"parttrack/modules/platform/metrics"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

func startBridge(t *testing.T, gatherer prometheus.Gatherer) (*Server, *eventbus.Bus, *httptest.Server) {
	t.Helper()
	bus := eventbus.NewBus()
	s := NewServer(nil, bus, gatherer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go s.hub.Run(ctx)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return s, bus, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Hub().ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, s.Hub().ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

// readReply skips event frames still in flight from earlier publishes
func readReply(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	for {
		if msg := readMessage(t, conn); msg.Type != "event" {
			return msg
		}
	}
}

func TestBridgeStreamsBusEvents(t *testing.T) {
	s, bus, ts := startBridge(t, nil)
	conn := dial(t, ts)
	waitClients(t, s, 1)

	bus.Publish(eventbus.NewEvent(eventbus.EventBadgeUpdated).WithData("view", 4))

	msg := readMessage(t, conn)
	if msg.Type != "event" || msg.Event == nil || msg.Event.Type != eventbus.EventBadgeUpdated {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.Event.Data["view"] != float64(4) {
		t.Fatalf("unexpected payload %+v", msg.Event.Data)
	}
}

func TestBridgeCommands(t *testing.T) {
	s, bus, ts := startBridge(t, nil)
	bus.Publish(eventbus.NewEvent(eventbus.EventAclUpdated))
	bus.Publish(eventbus.NewEvent(eventbus.EventDashboardUpdated))

	conn := dial(t, ts)
	waitClients(t, s, 1)

	if err := conn.WriteJSON(ClientMessage{Type: "ping"}); err != nil {
		t.Fatal(err)
	}
	if msg := readReply(t, conn); msg.Type != "pong" || msg.Time == 0 {
		t.Fatalf("unexpected pong %+v", msg)
	}

	if err := conn.WriteJSON(ClientMessage{Type: "get_history", Types: []eventbus.EventType{eventbus.EventAclUpdated}}); err != nil {
		t.Fatal(err)
	}
	msg := readReply(t, conn)
	if msg.Type != "history" || len(msg.Events) != 1 || msg.Events[0].Type != eventbus.EventAclUpdated {
		t.Fatalf("unexpected history %+v", msg)
	}

	if err := conn.WriteJSON(ClientMessage{Type: "subscribe", Types: []eventbus.EventType{eventbus.EventAclUpdated}}); err != nil {
		t.Fatal(err)
	}
	if msg := readReply(t, conn); msg.Type != "subscribed" {
		t.Fatalf("unexpected reply %+v", msg)
	}
}

func TestClientFilters(t *testing.T) {
	c := &WSClient{}
	if !c.accepts(eventbus.EventAclUpdated) {
		t.Fatal("a client without filters receives everything")
	}
	c.filters = map[eventbus.EventType]bool{eventbus.EventAclUpdated: true}
	if c.accepts(eventbus.EventBadgeUpdated) || !c.accepts(eventbus.EventAclUpdated) {
		t.Fatal("filters not honored")
	}
}

func TestBroadcastLog(t *testing.T) {
	s, _, ts := startBridge(t, nil)
	conn := dial(t, ts)
	waitClients(t, s, 1)

	log := logger.NewLogger(logger.INFO, nil, "assets")
	log.SetBroadcaster(s.Hub())
	log.Info("loaded %s", "VIN-1")

	msg := readMessage(t, conn)
	if msg.Type != "log" || msg.Line == nil || msg.Line.Message != "loaded VIN-1" || msg.Line.Source != "assets" {
		t.Fatalf("unexpected log frame %+v", msg)
	}
}

func TestMetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewRecorder(reg).Observe("assets", "load_asset", time.Now(), nil)
	_, _, ts := startBridge(t, reg)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `parttrack_facade_requests_total{feature="assets",operation="load_asset",outcome="ok"} 1`) {
		t.Fatalf("metrics body missing counter:\n%s", body)
	}

	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var health map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "ok" {
		t.Fatalf("health = %v", health)
	}
}

func TestMetricsRouteDisabledWithoutGatherer(t *testing.T) {
	_, _, ts := startBridge(t, nil)
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	s := NewServer(nil, eventbus.NewBus(), nil, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
