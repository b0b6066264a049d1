package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"notecraft-be/pkg/events"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Id   uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	mu     sync.RWMutex
	pageId string
}

// watchRequest is the only message clients send: it narrows the feed to one
// page, or widens it back to the whole workspace with an empty page_id.
type watchRequest struct {
	Action string `json:"action"`
	PageId string `json:"page_id"`
}

func NewClient(hub *Hub, conn *websocket.Conn, pageId string) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		Id:     uuid.New(),
		Send:   make(chan []byte, 256),
		pageId: pageId,
	}
}

func (c *Client) Watch(pageId string) {
	c.mu.Lock()
	c.pageId = pageId
	c.mu.Unlock()
}

func (c *Client) Watches(event events.WorkspaceEvent) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageId == "" || event.Touches(c.pageId)
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"client_id": c.Id, "error": err.Error()})
			}
			break
		}

		var req watchRequest
		if err := json.Unmarshal(message, &req); err != nil || req.Action != "watch" {
			continue
		}
		c.Watch(req.PageId)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per event, clients parse each message as a JSON object.
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
