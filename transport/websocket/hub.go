package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tablemind/chain-automa/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Clients never send game
	// data, only keepalives.
	maxMessageSize = 512

	// Outbound buffer per client. A client that falls this far behind is
	// dropped.
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Update is the envelope pushed to subscribers of a session.
type Update struct {
	SessionID string                 `json:"session_id"`
	Event     string                 `json:"event,omitempty"`
	State     *service.StateResponse `json:"state,omitempty"`
	Data      interface{}            `json:"data,omitempty"`
}

// Client is one subscribed connection. Writes go through the send channel
// so the write pump stays the connection's only writer.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub tracks subscribers per session and fans state updates out to them.
// Rooms are created on first subscribe and dropped when the last client
// leaves.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

// NewHub creates an empty hub, ready for ServeWS and broadcasts.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// ServeWS upgrades the request and subscribes the connection to the given
// session's updates.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}
	h.subscribe(client)

	go client.writePump()
	go client.readPump()
}

// BroadcastToSession pushes a state update to every subscriber of the
// session.
func (h *Hub) BroadcastToSession(sessionID string, state *service.StateResponse) {
	h.push(&Update{
		SessionID: sessionID,
		Event:     "state_update",
		State:     state,
	})
}

// BroadcastEvent pushes a custom event to every subscriber of the session.
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.push(&Update{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	})
}

// SessionClients returns how many connections are subscribed to a session.
func (h *Hub) SessionClients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

// push serializes an update once and queues it for every subscriber.
// Clients with a full send buffer are dropped rather than blocked on.
func (h *Hub) push(u *Update) {
	data, err := json.Marshal(u)
	if err != nil {
		log.Printf("Failed to marshal WebSocket update: %v", err)
		return
	}

	var stale []*Client
	h.mu.RLock()
	for client := range h.rooms[u.SessionID] {
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unsubscribe(client)
	}
}

// subscribe adds a client to its session's room.
func (h *Hub) subscribe(client *Client) {
	h.mu.Lock()
	room := h.rooms[client.sessionID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[client.sessionID] = room
	}
	room[client] = true
	n := len(room)
	h.mu.Unlock()

	log.Printf("Client subscribed to session %s (total clients: %d)", client.sessionID, n)
}

// unsubscribe removes a client and closes its send channel. Empty rooms
// are deleted. Safe to call more than once per client.
func (h *Hub) unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.sessionID]
	if !ok {
		return
	}
	if _, member := room[client]; !member {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.sessionID)
	}
	log.Printf("Client unsubscribed from session %s (remaining clients: %d)",
		client.sessionID, len(room))
}

// readPump drains the connection to keep it alive and detect closes.
// Incoming frames carry no game data.
func (c *Client) readPump() {
	defer func() {
		c.hub.unsubscribe(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump forwards queued updates to the connection and keeps it alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
