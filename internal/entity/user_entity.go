package entity

import (
	"time"

	"github.com/google/uuid"
)

// User carries only the profile fields the chat core consumes. Account
// management lives outside this service.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string
	School    *string
	CreatedAt time.Time
}
