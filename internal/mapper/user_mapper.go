package mapper

import (
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) UserToEntity(mdl *model.User) *entity.User {
	return &entity.User{
		Id:        mdl.Id,
		Username:  mdl.Username,
		School:    mdl.School,
		CreatedAt: mdl.CreatedAt,
	}
}

func (m *UserMapper) UserToModel(e *entity.User) *model.User {
	return &model.User{
		Id:        e.Id,
		Username:  e.Username,
		School:    e.School,
		CreatedAt: e.CreatedAt,
	}
}
