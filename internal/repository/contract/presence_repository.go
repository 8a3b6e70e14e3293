package contract

import (
	"context"
	"time"

	"lexcircle-be/internal/entity"

	"github.com/google/uuid"
)

// PresenceRepository holds one row per user. Upsert overwrites LastSeen, it
// never appends.
type PresenceRepository interface {
	Upsert(ctx context.Context, record *entity.PresenceRecord) error
	Delete(ctx context.Context, userId uuid.UUID) error
	CountSeenSince(ctx context.Context, cutoff time.Time) (int64, error)
	FindSeenSince(ctx context.Context, cutoff time.Time) ([]*entity.PresenceRecord, error)
}
