package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
	historyDefault = 100
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSClient is one connected browser
type WSClient struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	hub     *WSHub
	mu      sync.Mutex
	filters map[eventbus.EventType]bool
}

// WSHub streams bus events and log lines to websocket clients. It is
// subscribed to the bus from creation until Run returns.
type WSHub struct {
	mu      sync.RWMutex
	clients map[string]*WSClient
	bus     *eventbus.Bus
	log     *logger.Logger
	subID   string
}

// NewWSHub creates a hub fed by bus
func NewWSHub(bus *eventbus.Bus, log *logger.Logger) *WSHub {
	if log == nil {
		log = logger.Discard()
	}
	h := &WSHub{
		clients: make(map[string]*WSClient),
		bus:     bus,
		log:     log,
	}
	h.subID = bus.Subscribe(nil, h.broadcastEvent)
	return h
}

// Run blocks until ctx is done, then detaches from the bus and
// disconnects every client
func (h *WSHub) Run(ctx context.Context) {
	<-ctx.Done()
	h.bus.Unsubscribe(h.subID)

	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*WSClient)
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
}

// ServerMessage is the envelope of every frame sent to clients
type ServerMessage struct {
	Type   string            `json:"type"`
	Event  *eventbus.Event   `json:"event,omitempty"`
	Events []*eventbus.Event `json:"events,omitempty"`
	Line   *logger.Line      `json:"line,omitempty"`
	Time   int64             `json:"timestamp,omitempty"`
}

func (h *WSHub) broadcastEvent(event *eventbus.Event) {
	data, err := json.Marshal(ServerMessage{Type: "event", Event: event})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.accepts(event.Type) {
			c.trySend(data)
		}
	}
}

// BroadcastLog implements logger.Broadcaster
func (h *WSHub) BroadcastLog(line logger.Line) {
	data, err := json.Marshal(ServerMessage{Type: "log", Line: &line})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.trySend(data)
	}
}

// ClientCount returns the number of connected clients
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the client
func (h *WSHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed: %v", err)
		return
	}

	client := &WSClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  h,
	}

	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	h.log.Info("websocket client connected: %s", client.id)

	go client.writePump()
	go client.readPump()
}

func (h *WSHub) unregister(c *WSClient) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	if ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		h.log.Info("websocket client disconnected: %s", c.id)
	}
}

// trySend drops the frame when the client buffer is full. Callers hold
// the hub read lock, so send is never closed underneath.
func (c *WSClient) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *WSClient) accepts(t eventbus.EventType) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filters) == 0 || c.filters[t]
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read error: %v", err)
			}
			return
		}
		c.handleMessage(message)
	}
}

// ClientMessage is a command sent by a client
type ClientMessage struct {
	Type  string               `json:"type"`
	Types []eventbus.EventType `json:"types,omitempty"`
	Limit int                  `json:"limit,omitempty"`
}

func (c *WSClient) handleMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}

	var reply ServerMessage
	switch msg.Type {
	case "subscribe":
		c.mu.Lock()
		c.filters = make(map[eventbus.EventType]bool, len(msg.Types))
		for _, t := range msg.Types {
			c.filters[t] = true
		}
		c.mu.Unlock()
		reply = ServerMessage{Type: "subscribed", Time: time.Now().UnixMilli()}

	case "ping":
		reply = ServerMessage{Type: "pong", Time: time.Now().UnixMilli()}

	case "get_history":
		limit := msg.Limit
		if limit <= 0 {
			limit = historyDefault
		}
		var events []*eventbus.Event
		if len(msg.Types) > 0 {
			events = c.hub.bus.GetHistoryByType(msg.Types, limit)
		} else {
			events = c.hub.bus.GetHistory(limit)
		}
		reply = ServerMessage{Type: "history", Events: events}

	default:
		return
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c.id]; ok {
		c.trySend(data)
	}
}
