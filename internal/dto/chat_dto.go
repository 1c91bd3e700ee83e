package dto

// ChatResponse is the wire shape of a chat record. CreatedAt is epoch
// seconds, converted from the storage datetime at read time.
type ChatResponse struct {
	Id        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"`
}

// ChatMessageResponse is one flattened history entry as served by
// GET /chat-history/:chatid.
type ChatMessageResponse struct {
	ChatId  int64  `json:"chatid"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ChatMessagePayload is the inbound and outbound body of a chatMessage
// room event.
type ChatMessagePayload struct {
	ChatId  int64  `json:"chatid" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Message string `json:"message" validate:"required"`
}
