package memory

import (
	"context"
	"time"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PresenceStore is an in-memory PresenceRepository for local development and
// tests. Liveness is always decided by the cutoff comparison, the cache
// expiry below is only a janitor for rows whose Leave was never called.
type PresenceStore struct {
	cache *cache.Cache
}

func NewPresenceStore(window time.Duration) *PresenceStore {
	// Keep stale rows around well past the window; expiry is cleanup, not
	// the online check.
	c := cache.New(10*window, time.Minute)
	return &PresenceStore{
		cache: c,
	}
}

var _ contract.PresenceRepository = (*PresenceStore)(nil)

func (r *PresenceStore) Upsert(ctx context.Context, record *entity.PresenceRecord) error {
	copied := *record
	r.cache.Set(record.UserId.String(), &copied, cache.DefaultExpiration)
	return nil
}

func (r *PresenceStore) Delete(ctx context.Context, userId uuid.UUID) error {
	r.cache.Delete(userId.String())
	return nil
}

func (r *PresenceStore) CountSeenSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	for _, item := range r.cache.Items() {
		record := item.Object.(*entity.PresenceRecord)
		if !record.LastSeen.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (r *PresenceStore) FindSeenSince(ctx context.Context, cutoff time.Time) ([]*entity.PresenceRecord, error) {
	var records []*entity.PresenceRecord
	for _, item := range r.cache.Items() {
		record := item.Object.(*entity.PresenceRecord)
		if !record.LastSeen.Before(cutoff) {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}
