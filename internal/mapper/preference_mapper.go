package mapper

import (
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) SubjectToEntity(mdl *model.Subject) *entity.Subject {
	return &entity.Subject{
		Id:        mdl.Id,
		Name:      mdl.Name,
		CreatedAt: mdl.CreatedAt,
	}
}

func (m *PreferenceMapper) SubjectToModel(e *entity.Subject) *model.Subject {
	return &model.Subject{
		Id:        e.Id,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	}
}

func (m *PreferenceMapper) PreferenceToModel(e *entity.SubjectPreference) *model.SubjectPreference {
	return &model.SubjectPreference{
		Id:        e.Id,
		UserId:    e.UserId,
		SubjectId: e.SubjectId,
		CreatedAt: e.CreatedAt,
	}
}

func (m *PreferenceMapper) PreferenceToEntity(mdl *model.SubjectPreference) *entity.SubjectPreference {
	e := &entity.SubjectPreference{
		Id:        mdl.Id,
		UserId:    mdl.UserId,
		SubjectId: mdl.SubjectId,
		CreatedAt: mdl.CreatedAt,
	}
	if mdl.Subject != nil {
		e.Subject = m.SubjectToEntity(mdl.Subject)
	}
	return e
}
