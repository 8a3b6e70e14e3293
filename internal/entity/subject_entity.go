package entity

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	CreatedAt time.Time
}

// SubjectPreference links a user to a subject. At most 3 live rows per user,
// enforced at add time.
type SubjectPreference struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	SubjectId uuid.UUID `gorm:"type:uuid"`
	Subject   *Subject
	CreatedAt time.Time
}
