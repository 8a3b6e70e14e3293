package controller

import (
	"time"

	"lexcircle-be/internal/config"
	"lexcircle-be/internal/dto"
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/serverutils"
	"lexcircle-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Channels(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Online(ctx *fiber.Ctx) error
	OnlineUsers(ctx *fiber.Ctx) error
	Heartbeat(ctx *fiber.Ctx) error
	Leave(ctx *fiber.Ctx) error
	Config(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService     service.IChatService
	presenceService service.IPresenceService
	cfg             config.ChatConfig
}

func NewChatController(chatService service.IChatService, presenceService service.IPresenceService, cfg config.ChatConfig) IChatController {
	return &chatController{
		chatService:     chatService,
		presenceService: presenceService,
		cfg:             cfg,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("config", c.Config)
	h.Get("channels", c.Channels)
	h.Get("history/:channel", c.History)
	h.Post("send", c.Send)
	h.Get("online", c.Online)
	h.Get("online/users", c.OnlineUsers)
	h.Post("heartbeat", c.Heartbeat)
	h.Post("leave", c.Leave)
}

func identityFromLocals(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, "", serverutils.NewAuthRequired("token missing a valid user id")
	}
	username, _ := ctx.Locals("username").(string)
	if username == "" {
		return uuid.Nil, "", serverutils.NewAuthRequired("token missing a username")
	}
	return userId, username, nil
}

func (c *chatController) Channels(ctx *fiber.Ctx) error {
	userId, _, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	channels, err := c.chatService.Channels(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list channels", channels))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	if _, _, err := identityFromLocals(ctx); err != nil {
		return err
	}

	channelId := ctx.Params("channel")
	limit := ctx.QueryInt("limit", c.cfg.HistoryLimit)

	messages, err := c.chatService.History(ctx.Context(), channelId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch history", toMessageResponses(messages)))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userId, username, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	message, err := c.chatService.Append(ctx.Context(), req.Channel, userId, username, req.Body)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", toMessageResponse(message)))
}

func (c *chatController) Online(ctx *fiber.Ctx) error {
	if _, _, err := identityFromLocals(ctx); err != nil {
		return err
	}

	windowMs := ctx.QueryInt("window_ms", int(c.cfg.PresenceWindow/time.Millisecond))
	window := time.Duration(windowMs) * time.Millisecond

	count, err := c.presenceService.OnlineCount(ctx.Context(), window)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count online users", dto.OnlineCountResponse{
		Online:   count,
		WindowMs: int64(windowMs),
	}))
}

func (c *chatController) OnlineUsers(ctx *fiber.Ctx) error {
	if _, _, err := identityFromLocals(ctx); err != nil {
		return err
	}

	windowMs := ctx.QueryInt("window_ms", int(c.cfg.PresenceWindow/time.Millisecond))
	records, err := c.presenceService.OnlineUsers(ctx.Context(), time.Duration(windowMs)*time.Millisecond)
	if err != nil {
		return err
	}

	out := make([]dto.OnlineUserResponse, len(records))
	for i, record := range records {
		out[i] = dto.OnlineUserResponse{
			UserId:   record.UserId,
			Username: record.Username,
			LastSeen: record.LastSeen,
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list online users", out))
}

func (c *chatController) Heartbeat(ctx *fiber.Ctx) error {
	userId, username, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	c.presenceService.Heartbeat(ctx.Context(), userId, username)
	return ctx.JSON(serverutils.SuccessResponse("Success heartbeat", nil))
}

func (c *chatController) Leave(ctx *fiber.Ctx) error {
	userId, _, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	// Best-effort: a failed delete surfaces for visibility but the row would
	// age out regardless.
	if err := c.presenceService.Leave(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success leave chat", nil))
}

// Config tells clients what cadence to run at: how often to heartbeat, how
// often to re-poll the online count, and the server-side history cap.
func (c *chatController) Config(ctx *fiber.Ctx) error {
	if _, _, err := identityFromLocals(ctx); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch chat config", dto.ChatConfigResponse{
		HeartbeatMs:    c.cfg.HeartbeatInterval.Milliseconds(),
		OnlinePollMs:   c.cfg.OnlinePollEvery.Milliseconds(),
		PresenceWindow: c.cfg.PresenceWindow.Milliseconds(),
		HistoryLimit:   c.cfg.HistoryLimit,
	}))
}

func toMessageResponses(messages []*entity.ChatMessage) []dto.ChatMessageResponse {
	out := make([]dto.ChatMessageResponse, len(messages))
	for i, message := range messages {
		out[i] = toMessageResponse(message)
	}
	return out
}

func toMessageResponse(message *entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:        message.Id,
		Channel:   message.Channel,
		UserId:    message.UserId,
		Username:  message.Username,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}
