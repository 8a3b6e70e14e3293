package model

import (
	"time"

	"github.com/google/uuid"
)

// PresenceRecord is upsert-by-user: a heartbeat overwrites LastSeen, it never
// appends a second row.
type PresenceRecord struct {
	UserId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"type:varchar(255);not null"`
	LastSeen time.Time `gorm:"not null;index"`
}

func (PresenceRecord) TableName() string {
	return "presence_records"
}
