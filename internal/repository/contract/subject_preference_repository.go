package contract

import (
	"context"

	"lexcircle-be/internal/entity"

	"github.com/google/uuid"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Subject, error)
	FindAll(ctx context.Context) ([]*entity.Subject, error)
}

type SubjectPreferenceRepository interface {
	Create(ctx context.Context, pref *entity.SubjectPreference) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userId uuid.UUID) (int64, error)
	// FindAllByUser returns preferences in insertion order with Subject preloaded.
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.SubjectPreference, error)
}
