package chathub

import (
	"encoding/json"
	"log"
	"time"

	"pairchat/backend/internal/config"
	"pairchat/backend/internal/models"

	"github.com/gorilla/websocket"
)

// WebSocketClient реалізує інтерфейс chathub.Client поверх gorilla/websocket.
type WebSocketClient struct {
	ConnID   string
	UserID   uint
	Username string
	Conn     *websocket.Conn
	Hub      *ManagerService
	Send     chan models.ChatMessage
}

// --- Реалізація методів інтерфейсу ---

func (c *WebSocketClient) GetConnID() string                         { return c.ConnID }
func (c *WebSocketClient) GetUserID() uint                           { return c.UserID }
func (c *WebSocketClient) GetUsername() string                       { return c.Username }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatMessage { return c.Send }

// Run запускає 'pumps' для WebSocket
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close закриває Send канал (що зупинить writePump)
func (c *WebSocketClient) Close() {
	close(c.Send)
	// readPump зупиниться сам, коли Conn.Close() буде викликано в його defer.
}

// readPump читає події з WebSocket і передає їх у хаб.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c // Надсилаємо команду на Unregister
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.InboundEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("Error decoding JSON from connection %s: %v", c.ConnID, err)
			continue // Пропускаємо невірне повідомлення
		}

		// Особа відправника завжди береться зі з'єднання, не з payload.
		c.Hub.IncomingCh <- Event{Client: c, Inbound: ev}
	}
}

// writePump читає повідомлення з каналу Send і записує їх у WebSocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for connection %s: %v", c.ConnID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, dataToWrite); err != nil {
				return
			}

		case <-ticker.C:
			// Надсилаємо Ping для підтримки з'єднання активним
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
