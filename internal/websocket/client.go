package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ai-chat-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Room event names of the wire protocol.
const (
	EventJoin        = "join"
	EventLeave       = "leave"
	EventChatMessage = "chatMessage"
)

// roomKey accepts either a JSON number or a string; the room key is always
// the string form of the chat id.
type roomKey string

func (r *roomKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = roomKey(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = roomKey(n.String())
	return nil
}

// inboundFrame is one client-sent event.
type inboundFrame struct {
	Event   string  `json:"event"`
	Room    roomKey `json:"room,omitempty"`
	ChatId  int64   `json:"chatid,omitempty"`
	Type    string  `json:"type,omitempty"`
	Message string  `json:"message,omitempty"`
}

type outboundFrame struct {
	Event string `json:"event"`
	dto.ChatMessagePayload
}

// MessageHandler processes an inbound chatMessage event end to end
// (validation, rebroadcast, AI reply).
type MessageHandler interface {
	HandleChatMessage(ctx context.Context, msg dto.ChatMessagePayload)
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Ephemeral session id for this connection
	ID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	handler   MessageHandler
	closeOnce sync.Once
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// readPump pumps events from the websocket connection into the hub and the
// message handler. chatMessage events are handled synchronously in this
// goroutine, so within one room the human broadcast always precedes the AI
// broadcast.
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
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"client_id": c.ID, "error": err.Error()})
			}
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.Hub.logger.Warn("Client", "Malformed frame", map[string]interface{}{"client_id": c.ID, "error": err.Error()})
			continue
		}

		switch frame.Event {
		case EventJoin:
			c.Hub.Join(c, string(frame.Room))
		case EventLeave:
			c.Hub.Leave(c, string(frame.Room))
		case EventChatMessage:
			c.handler.HandleChatMessage(context.Background(), dto.ChatMessagePayload{
				ChatId:  frame.ChatId,
				Type:    frame.Type,
				Message: frame.Message,
			})
		default:
			c.Hub.logger.Warn("Client", "Unknown event", map[string]interface{}{"client_id": c.ID, "event": frame.Event})
		}
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

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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
