package service

import (
	"context"

	"lexcircle-be/internal/constant"
	"lexcircle-be/internal/dto"
	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/serverutils"
	"lexcircle-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPreferenceService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.PreferenceResponse, error)
	Add(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) (*dto.PreferenceResponse, error)
	Remove(ctx context.Context, userId uuid.UUID, preferenceId uuid.UUID) error
}

type preferenceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory) IPreferenceService {
	return &preferenceService{
		uowFactory: uowFactory,
	}
}

func (s *preferenceService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subjects, err := uow.SubjectRepository().FindAll(ctx)
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to list subjects", err)
	}
	out := make([]dto.SubjectResponse, len(subjects))
	for i, subject := range subjects {
		out[i] = dto.SubjectResponse{Id: subject.Id, Name: subject.Name}
	}
	return out, nil
}

func (s *preferenceService) List(ctx context.Context, userId uuid.UUID) ([]dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prefs, err := uow.SubjectPreferenceRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to list preferences", err)
	}
	return toPreferenceResponses(prefs), nil
}

// Add enforces the hard cap: the 4th live preference is rejected outright,
// nothing is evicted.
func (s *preferenceService) Add(ctx context.Context, userId uuid.UUID, subjectId uuid.UUID) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subject, err := uow.SubjectRepository().FindById(ctx, subjectId)
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to load subject", err)
	}
	if subject == nil {
		return nil, serverutils.NewValidationError("subject does not exist")
	}

	count, err := uow.SubjectPreferenceRepository().CountByUser(ctx, userId)
	if err != nil {
		return nil, serverutils.NewTransientIOError("failed to count preferences", err)
	}
	if count >= constant.MaxSubjectPreferences {
		return nil, serverutils.NewValidationError("subject preference limit reached")
	}

	pref := &entity.SubjectPreference{
		UserId:    userId,
		SubjectId: subjectId,
	}
	if err := uow.SubjectPreferenceRepository().Create(ctx, pref); err != nil {
		return nil, serverutils.NewTransientIOError("failed to store preference", err)
	}
	pref.Subject = subject

	resp := toPreferenceResponse(pref)
	return &resp, nil
}

func (s *preferenceService) Remove(ctx context.Context, userId uuid.UUID, preferenceId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.SubjectPreferenceRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return serverutils.NewTransientIOError("failed to load preferences", err)
	}
	for _, pref := range prefs {
		if pref.Id == preferenceId {
			if err := uow.SubjectPreferenceRepository().Delete(ctx, preferenceId); err != nil {
				return serverutils.NewTransientIOError("failed to delete preference", err)
			}
			return nil
		}
	}
	return serverutils.NewValidationError("preference not found")
}

func toPreferenceResponses(prefs []*entity.SubjectPreference) []dto.PreferenceResponse {
	out := make([]dto.PreferenceResponse, len(prefs))
	for i, pref := range prefs {
		out[i] = toPreferenceResponse(pref)
	}
	return out
}

func toPreferenceResponse(pref *entity.SubjectPreference) dto.PreferenceResponse {
	resp := dto.PreferenceResponse{
		Id:        pref.Id,
		SubjectId: pref.SubjectId,
		CreatedAt: pref.CreatedAt,
	}
	if pref.Subject != nil {
		resp.SubjectName = pref.Subject.Name
	}
	return resp
}
