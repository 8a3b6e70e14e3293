package implementation

import (
	"context"
	"time"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/mapper"
	"lexcircle-be/internal/model"
	"lexcircle-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PresenceMapper
}

func NewPresenceRepository(db *gorm.DB) contract.PresenceRepository {
	return &PresenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPresenceMapper(),
	}
}

func (r *PresenceRepositoryImpl) Upsert(ctx context.Context, record *entity.PresenceRecord) error {
	m := r.mapper.PresenceRecordToModel(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "last_seen"}),
	}).Create(m).Error
}

func (r *PresenceRepositoryImpl) Delete(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.PresenceRecord{}).Error
}

func (r *PresenceRepositoryImpl) CountSeenSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PresenceRecord{}).
		Where("last_seen >= ?", cutoff).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PresenceRepositoryImpl) FindSeenSince(ctx context.Context, cutoff time.Time) ([]*entity.PresenceRecord, error) {
	var models []*model.PresenceRecord
	err := r.db.WithContext(ctx).
		Where("last_seen >= ?", cutoff).
		Order("last_seen DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.PresenceRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PresenceRecordToEntity(m)
	}
	return entities, nil
}
