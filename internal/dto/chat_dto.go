package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Channel string `json:"channel" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Channel   string    `json:"channel"`
	UserId    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ChannelResponse struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

type ChatConfigResponse struct {
	HeartbeatMs    int64 `json:"heartbeat_ms"`
	OnlinePollMs   int64 `json:"online_poll_ms"`
	PresenceWindow int64 `json:"presence_window_ms"`
	HistoryLimit   int   `json:"history_limit"`
}

type OnlineCountResponse struct {
	Online   int64 `json:"online"`
	WindowMs int64 `json:"window_ms"`
}

type OnlineUserResponse struct {
	UserId   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}
