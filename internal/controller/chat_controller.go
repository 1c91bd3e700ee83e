package controller

import (
	"strconv"

	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetChatHistory(ctx *fiber.Ctx) error
	GetChat(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
	GetAllChats(ctx *fiber.Ctx) error
	CreateChat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/chat-history/:chatid", c.GetChatHistory)
	r.Get("/chat/:chatid", c.GetChat)
	r.Delete("/chat/:chatid", c.DeleteChat)
	r.Get("/chat", c.GetAllChats)
	r.Post("/chat", c.CreateChat)
}

func parseChatId(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("chatid"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "chatid must be an integer")
	}
	return id, nil
}

// GetChatHistory returns the flattened turn sequence for a chat, an empty
// array when there is none (including when the chat itself is absent).
func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	id, err := parseChatId(ctx)
	if err != nil {
		return err
	}

	history, err := c.service.GetChatHistory(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(history)
}

func (c *chatController) GetChat(ctx *fiber.Ctx) error {
	id, err := parseChatId(ctx)
	if err != nil {
		return err
	}

	chat, err := c.service.GetChat(ctx.Context(), id)
	if err != nil {
		return err
	}
	if chat == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(nil)
	}

	return ctx.JSON(chat)
}

func (c *chatController) DeleteChat(ctx *fiber.Ctx) error {
	id, err := parseChatId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteChat(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{})
}

func (c *chatController) GetAllChats(ctx *fiber.Ctx) error {
	chats, err := c.service.GetAllChats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(chats)
}

func (c *chatController) CreateChat(ctx *fiber.Ctx) error {
	id, err := c.service.CreateChat(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(id)
}
