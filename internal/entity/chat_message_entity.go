package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once created. Username is denormalized at write
// time, so a later username change is not reflected in history.
type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Channel   string
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Username  string
	Body      string
	CreatedAt time.Time
}
