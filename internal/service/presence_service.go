package service

import (
	"context"
	"time"

	"lexcircle-be/internal/constant"
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/logger"
	"lexcircle-be/internal/pkg/serverutils"
	"lexcircle-be/internal/repository/contract"

	"github.com/google/uuid"
)

type IPresenceService interface {
	Heartbeat(ctx context.Context, userId uuid.UUID, username string)
	OnlineCount(ctx context.Context, window time.Duration) (int64, error)
	OnlineUsers(ctx context.Context, window time.Duration) ([]*entity.PresenceRecord, error)
	Leave(ctx context.Context, userId uuid.UUID) error
}

// presenceService is deliberately best-effort: a failed heartbeat is logged
// and dropped, never retried, never surfaced. Staleness, not deletion, is the
// correctness backstop for clients that vanish without calling Leave.
type presenceService struct {
	repo   contract.PresenceRepository
	logger logger.ILogger
	now    func() time.Time
}

func NewPresenceService(repo contract.PresenceRepository, log logger.ILogger) *presenceService {
	return &presenceService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *presenceService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *presenceService) Heartbeat(ctx context.Context, userId uuid.UUID, username string) {
	record := &entity.PresenceRecord{
		UserId:   userId,
		Username: username,
		LastSeen: s.now(),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Warn("PresenceService", "heartbeat upsert failed", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
	}
}

func (s *presenceService) OnlineCount(ctx context.Context, window time.Duration) (int64, error) {
	if window <= 0 {
		window = constant.PresenceWindow
	}
	count, err := s.repo.CountSeenSince(ctx, s.now().Add(-window))
	if err != nil {
		return 0, serverutils.NewTransientIOError("failed to count online users", err)
	}
	return count, nil
}

func (s *presenceService) OnlineUsers(ctx context.Context, window time.Duration) ([]*entity.PresenceRecord, error) {
	if window <= 0 {
		window = constant.PresenceWindow
	}
	records, err := s.repo.FindSeenSince(ctx, s.now().Add(-window))
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to list online users", err)
	}
	return records, nil
}

func (s *presenceService) Leave(ctx context.Context, userId uuid.UUID) error {
	if err := s.repo.Delete(ctx, userId); err != nil {
		// The row self-expires after the window; log and move on.
		s.logger.Warn("PresenceService", "presence delete failed", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
		return serverutils.NewTransientIOError("failed to clear presence", err)
	}
	return nil
}
