package unitofwork

import (
	"context"

	"lexcircle-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PresenceRepository() contract.PresenceRepository
	SubjectRepository() contract.SubjectRepository
	SubjectPreferenceRepository() contract.SubjectPreferenceRepository
	SystemLogRepository() contract.SystemLogRepository
}
