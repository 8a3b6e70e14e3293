package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are append-only. No UpdatedAt/DeletedAt: messages are
// never edited or deleted by this service.
type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Channel   string    `gorm:"type:varchar(255);not null;index:idx_chat_messages_channel_created,priority:1"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Username  string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_chat_messages_channel_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
