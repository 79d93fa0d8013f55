// Package ws provides WebSocket support for the live dashboard feed,
// built on gorilla/websocket.
//
// Clients subscribe to a channel (one channel per seller); Publish fans a
// message out to every client on that channel only. Cross-tenant
// broadcast is deliberately not offered — the dashboard feed follows the
// same ownership scoping as every other read.
//
//	var FeedHub = ws.NewHub()
//	func init() { go FeedHub.Run() }
//
//	// in a handler:
//	ws.Upgrade(w, r, FeedHub, sellerID)
//
//	// from anywhere:
//	FeedHub.Publish(sellerID, payload)
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pehnava/pehnava/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client is a single connected WebSocket client pinned to one channel.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	channel string
	send    chan []byte
}

// readPump discards inbound frames (the feed is one-way) and tears the
// client down when the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
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
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// ─── Hub ──────────────────────────────────────────────────────────────────────

type outbound struct {
	channel string
	data    []byte
}

// Hub maintains the active connections grouped by channel.
type Hub struct {
	channels   map[string]map[*Client]bool
	publish    chan outbound
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		channels:   make(map[string]map[*Client]bool),
		publish:    make(chan outbound, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Publish queues data for delivery to every client on channel.
// Never blocks; drops when the hub's buffer is full.
func (h *Hub) Publish(channel string, data []byte) {
	select {
	case h.publish <- outbound{channel: channel, data: data}:
	default:
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.channels[client.channel] == nil {
				h.channels[client.channel] = make(map[*Client]bool)
			}
			h.channels[client.channel][client] = true

		case client := <-h.unregister:
			if clients, ok := h.channels[client.channel]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.channels, client.channel)
					}
				}
			}

		case out := <-h.publish:
			for client := range h.channels[out.channel] {
				select {
				case client.send <- out.data:
				default:
					close(client.send)
					delete(h.channels[out.channel], client)
				}
			}
		}
	}
}

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades an HTTP connection to a WebSocket and subscribes the
// resulting client to channel on hub.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, channel string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, channel: channel, send: make(chan []byte, 256)}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
