package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByChannel filters chat messages by their channel key.
type ByChannel struct {
	Channel string
}

func (s ByChannel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel = ?", s.Channel)
}

// SeenSince filters presence records inside the liveness window.
type SeenSince struct {
	Cutoff time.Time
}

func (s SeenSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_seen >= ?", s.Cutoff)
}
