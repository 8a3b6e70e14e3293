package mapper

import (
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	return &model.ChatMessage{
		Id:        e.Id,
		Channel:   e.Channel,
		UserId:    e.UserId,
		Username:  e.Username,
		Body:      e.Body,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToEntity(mdl *model.ChatMessage) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:        mdl.Id,
		Channel:   mdl.Channel,
		UserId:    mdl.UserId,
		Username:  mdl.Username,
		Body:      mdl.Body,
		CreatedAt: mdl.CreatedAt,
	}
}
