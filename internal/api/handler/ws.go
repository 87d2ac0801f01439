package handler

import (
	"net/http"

	"pairchat/backend/internal/chathub"
	"pairchat/backend/internal/config"
	"pairchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket. The route sits behind
// RequireAuth, so the principal is already in the gin context.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID := c.GetUint(ctxUserID)
	username := c.GetString(ctxUsername)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "error.upgrade_failed")})
		return
	}

	client := &chathub.WebSocketClient{
		ConnID:   uuid.New().String(),
		UserID:   userID,
		Username: username,
		Conn:     conn,
		Hub:      h.Hub,
		Send:     make(chan models.ChatMessage, config.SendBuffer),
	}

	// Реєстрація клієнта в Chat Hub
	h.Hub.RegisterCh <- client

	// Запуск read/write pumps
	client.Run()
}
