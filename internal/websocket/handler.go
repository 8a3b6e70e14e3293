package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. The connection joins the
// requested channel's room immediately.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID, username, channelId string) {
	client := &Client{
		Hub:      hub,
		Conn:     c,
		UserID:   userID,
		Username: username,
		Channel:  channelId,
		Send:     make(chan []byte, 256),
		done:     make(chan struct{}),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
