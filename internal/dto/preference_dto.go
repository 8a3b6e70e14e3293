package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddPreferenceRequest struct {
	SubjectId uuid.UUID `json:"subject_id" validate:"required"`
}

type SubjectResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PreferenceResponse struct {
	Id          uuid.UUID `json:"id"`
	SubjectId   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	CreatedAt   time.Time `json:"created_at"`
}
