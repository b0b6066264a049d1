package handler

import (
	"notecraft-be/internal/pkg/logger"
	internalWS "notecraft-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RealtimeHandler upgrades editors onto the workspace change feed.
type RealtimeHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer. The optional page_id
// query parameter narrows the feed to one page.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	pageId := c.Query("page_id")
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("RealtimeHandler", "Starting WebSocket session", map[string]interface{}{"page_id": pageId})
		internalWS.ServeWs(h.hub, conn, pageId)
		h.logger.Info("RealtimeHandler", "WebSocket session ended", map[string]interface{}{"page_id": pageId})
	})(c)
}
