package websocket

import (
	"encoding/json"
	"sync"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
)

// Hub maintains ephemeral room membership. Rooms are keyed by the string
// form of the chat id and exist only while they have members; nothing here
// is ever persisted.
type Hub struct {
	// rooms map: room key -> member set
	rooms map[string]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.logger.Info("Hub", "Client connected", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			for room := range h.rooms {
				if h.rooms[room][client] {
					delete(h.rooms[room], client)
					if len(h.rooms[room]) == 0 {
						delete(h.rooms, room)
					}
				}
			}
			h.mu.Unlock()
			client.closeSend()
			h.logger.Info("Hub", "Client disconnected", map[string]interface{}{"client_id": client.ID})
		}
	}
}

// Join adds the client to the room's member set. Idempotent.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	h.mu.Unlock()
	h.logger.Info("Hub", "Client joined room", map[string]interface{}{"client_id": client.ID, "room": room})
}

// Leave removes the client from the room's member set. No-op if absent.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	if h.rooms[room] != nil {
		delete(h.rooms[room], client)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
	h.logger.Info("Hub", "Client left room", map[string]interface{}{"client_id": client.ID, "room": room})
}

// BroadcastToRoom sends a chatMessage frame to every member of the room.
func (h *Hub) BroadcastToRoom(room string, msg dto.ChatMessagePayload) {
	data, _ := json.Marshal(outboundFrame{
		Event:              EventChatMessage,
		ChatMessagePayload: msg,
	})

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for client := range h.rooms[room] {
		members = append(members, client)
	}
	h.mu.RUnlock()

	for _, client := range members {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"client_id": client.ID, "room": room})
			h.unregister <- client
		}
	}
}

// RoomSize reports the current member count of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
