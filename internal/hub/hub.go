package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/padel-brackets/internal/notifier"
)

var _ notifier.Notifier = (*Hub)(nil)

// ErrStopped is returned once the hub no longer accepts clients.
var ErrStopped = errors.New("hub is shutting down")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// New creates a hub. Run must be started before clients connect.
func New() *Hub {
	return &Hub{
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run processes unregistrations until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok && clients[client] {
				client.close()
				delete(clients, client)
				if len(clients) == 0 {
					delete(h.rooms, client.room)
					log.Debug("Room closed as it's empty", "room", client.room)
				} else {
					log.Info("Client unregistered", "room", client.room, "clientID", client.ID, "clients", len(clients))
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			h.stopped = true
			for room, clients := range h.rooms {
				for client := range clients {
					client.close()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			log.Info("Hub stopped")
			return
		}
	}
}

// ClientCount returns the number of clients in a room.
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom sends a message to every client of a room. Clients whose
// send buffer is full miss the message.
func (h *Hub) BroadcastToRoom(room string, msg Message) {
	msg.RoomID = room
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to marshal websocket message", "room", room, "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	clients, ok := h.rooms[room]
	if !ok {
		log.Debug("No clients in room to broadcast to", "room", room, "type", msg.Type)
		return
	}
	log.Debug("Broadcasting to room", "room", room, "type", msg.Type, "clients", len(clients))
	for client := range clients {
		if !client.enqueue(data) {
			log.Warn("Client send buffer full, skipping message", "room", room, "clientID", client.ID)
		}
	}
}

// Upgrade upgrades the request to a websocket connection for room. The client
// receives nothing until it is registered.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, room string) (*Client, error) {
	select {
	case <-h.done:
		http.Error(w, "Hub is shutting down", http.StatusServiceUnavailable)
		return nil, ErrStopped
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		return nil, fmt.Errorf("failed to upgrade websocket connection: %w", err)
	}
	return &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}, nil
}

// Register queues the initial messages and adds the client to its room before
// returning, so every later broadcast reaches it after them. The connection is
// closed when the hub has stopped.
func (h *Hub) Register(client *Client, initial ...Message) error {
	for _, msg := range initial {
		msg.RoomID = client.room
		data, err := json.Marshal(msg)
		if err != nil {
			log.Error("Failed to marshal initial websocket message", "room", client.room, "error", err)
			continue
		}
		client.enqueue(data)
	}

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		client.conn.Close()
		return ErrStopped
	}
	if _, ok := h.rooms[client.room]; !ok {
		h.rooms[client.room] = make(map[*Client]bool)
	}
	h.rooms[client.room][client] = true
	log.Info("Client registered", "room", client.room, "clientID", client.ID, "clients", len(h.rooms[client.room]))
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()
	return nil
}

// NotifyMatchSynced pushes a short summary of the stored score to the room.
func (h *Hub) NotifyMatchSynced(ctx context.Context, update notifier.MatchUpdate) error {
	h.BroadcastToRoom(update.CategoryID, Message{
		Type: TypeMatchSynced,
		Payload: map[string]any{
			"game_id": update.GameID,
			"status":  update.Status,
			"sets":    update.Sets,
			"winner":  update.WinnerTeam,
		},
	})
	return nil
}

// NotifyResyncFailed tells the viewers of a category that a score was not stored.
func (h *Hub) NotifyResyncFailed(ctx context.Context, failure notifier.ResyncFailure) error {
	reason := ""
	if failure.Err != nil {
		reason = failure.Err.Error()
	}
	h.BroadcastToRoom(failure.CategoryID, Message{
		Type: TypeResyncError,
		Payload: map[string]any{
			"game_id": failure.GameID,
			"step":    failure.Step,
			"error":   reason,
		},
	})
	return nil
}

// Room returns the room the client subscribes to.
func (c *Client) Room() string { return c.room }

// Close drops a client that was never registered.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Unexpected websocket close", "room", c.room, "clientID", c.ID, "error", err)
			}
			log.Debug("Client disconnected", "room", c.room, "clientID", c.ID)
			return
		}
	}
}

func (c *Client) writePump() {
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
				log.Error("Failed to write websocket message", "room", c.room, "clientID", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("Failed to ping client", "room", c.room, "clientID", c.ID, "error", err)
				return
			}
		}
	}
}
