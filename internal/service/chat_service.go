package service

import (
	"context"
	"strings"

	"lexcircle-be/internal/constant"
	"lexcircle-be/internal/dto"
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/logger"
	"lexcircle-be/internal/pkg/serverutils"
	"lexcircle-be/internal/repository/specification"
	"lexcircle-be/internal/repository/unitofwork"
	"lexcircle-be/pkg/bus"
	"lexcircle-be/pkg/chat/channel"
	"lexcircle-be/pkg/events"
	pktNats "lexcircle-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	Append(ctx context.Context, channelId string, userId uuid.UUID, username, body string) (*entity.ChatMessage, error)
	History(ctx context.Context, channelId string, limit int) ([]*entity.ChatMessage, error)
	Channels(ctx context.Context, userId uuid.UUID) ([]dto.ChannelResponse, error)
}

// chatService is the Message Log plus channel listing. Append persists first,
// then fans out on the delivery bus; subscribers (the sender included) render
// from the fanout, never from the request path.
type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	deliveries     bus.DeliveryBus
	eventPublisher *pktNats.Publisher
	historyLimit   int
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	deliveries bus.DeliveryBus,
	eventPublisher *pktNats.Publisher,
	historyLimit int,
	log logger.ILogger,
) IChatService {
	if historyLimit <= 0 {
		historyLimit = constant.HistoryLimit
	}
	return &chatService{
		uowFactory:     uowFactory,
		deliveries:     deliveries,
		eventPublisher: eventPublisher,
		historyLimit:   historyLimit,
		logger:         log,
	}
}

func (s *chatService) Append(ctx context.Context, channelId string, userId uuid.UUID, username, body string) (*entity.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, serverutils.NewValidationError("message body must not be empty")
	}

	message := &entity.ChatMessage{
		Channel:  channelId,
		UserId:   userId,
		Username: username, // denormalized at write time
		Body:     body,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, serverutils.NewTransientIOError("failed to store message", err)
	}

	// Fanout never blocks or fails the append from the caller's view.
	if err := s.deliveries.Publish(ctx, message); err != nil {
		s.logger.Warn("ChatService", "delivery fanout failed", map[string]interface{}{
			"channel": channelId,
			"error":   err,
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewChatMessageSent(message.Id, userId, channelId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ChatService", "failed to publish CHAT_MESSAGE_SENT event", map[string]interface{}{"error": err})
		}
	}

	return message, nil
}

func (s *chatService) History(ctx context.Context, channelId string, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	// Newest first to honor the limit, then reversed to oldest-first for display.
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChannel{Channel: channelId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to fetch history", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *chatService) Channels(ctx context.Context, userId uuid.UUID) ([]dto.ChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to load profile", err)
	}

	var school *string
	if user != nil {
		school = user.School
	}

	prefs, err := uow.SubjectPreferenceRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to load subject preferences", err)
	}

	subjects := make([]channel.Subject, 0, len(prefs))
	for _, pref := range prefs {
		if pref.Subject == nil {
			continue
		}
		subjects = append(subjects, channel.Subject{Name: pref.Subject.Name})
	}

	resolved := channel.Resolve(school, subjects)
	out := make([]dto.ChannelResponse, len(resolved))
	for i, ch := range resolved {
		out[i] = dto.ChannelResponse{Id: ch.ID, Label: ch.Label}
	}
	return out, nil
}
