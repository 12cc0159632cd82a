package hub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message types pushed to bracket viewers.
const (
	TypeScene       = "scene"
	TypeScenePatch  = "scene_patch"
	TypeMatchSynced = "match_synced"
	TypeResyncError = "resync_error"
)

// Message is the envelope written to every websocket client.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	RoomID  string `json:"room_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Client is one websocket connection subscribed to a room.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string

	mu     sync.Mutex
	closed bool
}

// Hub keeps the websocket clients of every room, one room per category.
type Hub struct {
	unregister chan *Client
	done       chan struct{}

	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	stopped bool
}
