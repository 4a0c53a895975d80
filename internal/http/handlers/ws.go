package handlers

import (
	"net/http"

	"reminder_webapp/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// single-user app served same-origin or from a trusted local device
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS upgrades the connection and attaches it to the notification hub.
func (h *Handler) WS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "err", err)
		return
	}
	h.Hub.Register(conn)
}
