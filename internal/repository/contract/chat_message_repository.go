package contract

import (
	"context"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/repository/specification"
)

// ChatMessageRepository is append-only: messages are never updated or deleted
// by this service.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
