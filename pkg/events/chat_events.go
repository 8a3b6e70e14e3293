package events

import (
	"time"

	"github.com/google/uuid"
)

// Chat event codes consumed by the activity worker.
const (
	ChatMessageSent = "CHAT_MESSAGE_SENT"
	ChatUserJoined  = "CHAT_USER_JOINED"
	ChatUserLeft    = "CHAT_USER_LEFT"
)

func NewChatMessageSent(messageId, userId uuid.UUID, channel string) BaseEvent {
	now := time.Now()
	return BaseEvent{
		Type: ChatMessageSent,
		Data: map[string]interface{}{
			"message_id": messageId,
			"user_id":    userId,
			"channel":    channel,
		},
		OccurredAt: now,
	}
}

func NewChatUserJoined(userId uuid.UUID, username string) BaseEvent {
	return BaseEvent{
		Type: ChatUserJoined,
		Data: map[string]interface{}{
			"user_id":  userId,
			"username": username,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatUserLeft(userId uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: ChatUserLeft,
		Data: map[string]interface{}{
			"user_id": userId,
		},
		OccurredAt: time.Now(),
	}
}
