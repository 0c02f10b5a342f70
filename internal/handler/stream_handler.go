package handler

import (
	"github.com/mawuli2121/Priya-Project/internal/pkg/logger"
	"github.com/mawuli2121/Priya-Project/internal/pkg/serverutils"
	internalWS "github.com/mawuli2121/Priya-Project/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// StreamHandler upgrades browser connections onto the hub so they receive
// the live analysis text for their session.
type StreamHandler struct {
	hub           *internalWS.Hub
	sessionSecret string
	logger        logger.ILogger
}

func NewStreamHandler(hub *internalWS.Hub, sessionSecret string, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		hub:           hub,
		sessionSecret: sessionSecret,
		logger:        log,
	}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/analysis/v1")
	g.Get("ws", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *StreamHandler) ServeWs(ctx *fiber.Ctx) error {
	// Priority 1: Query Param (Browser standard)
	tokenStr := ctx.Query("token")

	// Priority 2: the session cookie itself
	if tokenStr == "" {
		tokenStr = ctx.Cookies(serverutils.SessionCookieName)
	}

	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or session cookie)"})
	}

	sessionID, err := serverutils.ParseSessionToken(h.sessionSecret, tokenStr)
	if err != nil {
		h.logger.Warn("StreamHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(h.hub, conn, sessionID)
	})(ctx)
}
