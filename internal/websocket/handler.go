package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs runs one connection until it closes. pageId optionally narrows the
// feed from the start.
func ServeWs(hub *Hub, c *websocket.Conn, pageId string) {
	client := NewClient(hub, c, pageId)
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
