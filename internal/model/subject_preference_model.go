package model

import (
	"time"

	"github.com/google/uuid"
)

type SubjectPreference struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subject_preferences_user_subject,priority:1"`
	SubjectId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subject_preferences_user_subject,priority:2"`
	Subject   *Subject  `gorm:"foreignKey:SubjectId"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SubjectPreference) TableName() string {
	return "subject_preferences"
}
