package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, handler MessageHandler, c *websocket.Conn) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		ID:      uuid.New(),
		Send:    make(chan []byte, 256),
		handler: handler,
	}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
