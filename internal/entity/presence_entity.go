package entity

import (
	"time"

	"github.com/google/uuid"
)

// PresenceRecord is one row per user, upserted on every heartbeat.
// "Online" is derived: now - LastSeen < window. Leave deletes the row;
// an unclean disconnect simply lets it age out of the window.
type PresenceRecord struct {
	UserId   uuid.UUID
	Username string
	LastSeen time.Time
}
