package implementation

import (
	"context"
	"errors"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/mapper"
	"lexcircle-be/internal/model"
	"lexcircle-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewSubjectRepository(db *gorm.DB) contract.SubjectRepository {
	return &SubjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *SubjectRepositoryImpl) Create(ctx context.Context, subject *entity.Subject) error {
	m := r.mapper.SubjectToModel(subject)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*subject = *r.mapper.SubjectToEntity(m)
	return nil
}

func (r *SubjectRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	var m model.Subject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SubjectToEntity(&m), nil
}

func (r *SubjectRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Subject, error) {
	var models []*model.Subject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Subject, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SubjectToEntity(m)
	}
	return entities, nil
}

type SubjectPreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewSubjectPreferenceRepository(db *gorm.DB) contract.SubjectPreferenceRepository {
	return &SubjectPreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *SubjectPreferenceRepositoryImpl) Create(ctx context.Context, pref *entity.SubjectPreference) error {
	m := r.mapper.PreferenceToModel(pref)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pref = *r.mapper.PreferenceToEntity(m)
	return nil
}

func (r *SubjectPreferenceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SubjectPreference{}, id).Error
}

func (r *SubjectPreferenceRepositoryImpl) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SubjectPreference{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SubjectPreferenceRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.SubjectPreference, error) {
	var models []*model.SubjectPreference
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ?", userId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.SubjectPreference, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PreferenceToEntity(m)
	}
	return entities, nil
}
