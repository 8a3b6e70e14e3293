package mapper

import (
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/model"
)

type PresenceMapper struct{}

func NewPresenceMapper() *PresenceMapper {
	return &PresenceMapper{}
}

func (m *PresenceMapper) PresenceRecordToModel(e *entity.PresenceRecord) *model.PresenceRecord {
	return &model.PresenceRecord{
		UserId:   e.UserId,
		Username: e.Username,
		LastSeen: e.LastSeen,
	}
}

func (m *PresenceMapper) PresenceRecordToEntity(mdl *model.PresenceRecord) *entity.PresenceRecord {
	return &entity.PresenceRecord{
		UserId:   mdl.UserId,
		Username: mdl.Username,
		LastSeen: mdl.LastSeen,
	}
}
