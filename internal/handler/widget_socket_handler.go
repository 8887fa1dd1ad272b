package handler

import (
	"routine-advisor-be/internal/pkg/logger"
	"routine-advisor-be/internal/pkg/serverutils"
	internalWS "routine-advisor-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WidgetSocketHandler streams widget updates of the caller's session.
type WidgetSocketHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewWidgetSocketHandler(hub *internalWS.Hub, log logger.ILogger) *WidgetSocketHandler {
	return &WidgetSocketHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *WidgetSocketHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
}

// ServeWs upgrades the request. The session comes from the widget cookie, so
// a tab only ever hears about its own session.
func (h *WidgetSocketHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := serverutils.SessionID(c)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing widget session"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("WidgetSocketHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("WidgetSocketHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
