package service

import (
	"context"
	"encoding/json"

	"lexcircle-be/internal/model"
	"lexcircle-be/internal/pkg/logger"
	"lexcircle-be/internal/repository/unitofwork"
	"lexcircle-be/pkg/events"
	pktNats "lexcircle-be/pkg/nats"

	"gorm.io/datatypes"
)

// ActivityService consumes chat events off the NATS stream and writes the
// audit trail. It runs beside the request path; losing it never affects chat.
type ActivityService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, log logger.ILogger) *ActivityService {
	return &ActivityService{
		uowFactory: uowFactory,
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *ActivityService) Start() {
	err := s.subscriber.Subscribe("chat.>", "chat-activity-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("ActivityService", "Failed to start activity subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("ActivityService", "Activity worker started, listening to chat.>", nil)
}

func (s *ActivityService) handleEvent(ctx context.Context, event events.Event) error {
	details, err := json.Marshal(event.Payload())
	if err != nil {
		s.logger.Warn("ActivityService", "Unserializable event payload, dropping", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
		return nil
	}

	entry := &model.SystemLog{
		EventType: event.EventType(),
		Details:   datatypes.JSON(details),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().Create(ctx, entry); err != nil {
		// Returning the error Naks the message so the stream redelivers it.
		return err
	}
	return nil
}
