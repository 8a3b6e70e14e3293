package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/model"
	"lexcircle-be/internal/repository/contract"
	"lexcircle-be/internal/repository/specification"
	"lexcircle-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory unit of work for service tests. Repositories interpret the same
// specification values the gorm implementations translate to SQL.

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	users    *fakeUserRepo
	messages *fakeChatMessageRepo
	presence *fakePresenceRepo
	subjects *fakeSubjectRepo
	prefs    *fakePreferenceRepo
	logs     *fakeSystemLogRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:    &fakeUserRepo{},
		messages: &fakeChatMessageRepo{},
		presence: &fakePresenceRepo{},
		subjects: &fakeSubjectRepo{},
		prefs:    &fakePreferenceRepo{},
		logs:     &fakeSystemLogRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                { return u.users }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *fakeUow) PresenceRepository() contract.PresenceRepository       { return u.presence }
func (u *fakeUow) SubjectRepository() contract.SubjectRepository         { return u.subjects }
func (u *fakeUow) SubjectPreferenceRepository() contract.SubjectPreferenceRepository {
	return u.prefs
}
func (u *fakeUow) SystemLogRepository() contract.SystemLogRepository { return u.logs }

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			for _, u := range r.users {
				if u.Id == byId.ID {
					return u, nil
				}
			}
		}
	}
	return nil, nil
}

type fakeChatMessageRepo struct {
	mu        sync.Mutex
	messages  []*entity.ChatMessage
	createErr error
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeChatMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.ChatMessage, len(r.messages))
	copy(out, r.messages)

	limit := -1
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByChannel:
			filtered := out[:0]
			for _, m := range out {
				if m.Channel == s.Channel {
					filtered = append(filtered, m)
				}
			}
			out = filtered
		case specification.OrderBy:
			desc := s.Desc
			sort.SliceStable(out, func(i, j int) bool {
				if desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		case specification.Limit:
			limit = s.N
		}
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakePresenceRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*entity.PresenceRecord
	upsertErr error
	countErr  error
	deleteErr error
}

func (r *fakePresenceRepo) ensure() {
	if r.records == nil {
		r.records = make(map[uuid.UUID]*entity.PresenceRecord)
	}
}

func (r *fakePresenceRepo) Upsert(ctx context.Context, record *entity.PresenceRecord) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	copied := *record
	r.records[record.UserId] = &copied
	return nil
}

func (r *fakePresenceRepo) Delete(ctx context.Context, userId uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	delete(r.records, userId)
	return nil
}

func (r *fakePresenceRepo) CountSeenSince(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	records, _ := r.FindSeenSince(ctx, cutoff)
	return int64(len(records)), nil
}

func (r *fakePresenceRepo) FindSeenSince(ctx context.Context, cutoff time.Time) ([]*entity.PresenceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	var out []*entity.PresenceRecord
	for _, rec := range r.records {
		if !rec.LastSeen.Before(cutoff) {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeSubjectRepo struct {
	mu       sync.Mutex
	subjects []*entity.Subject
}

func (r *fakeSubjectRepo) Create(ctx context.Context, subject *entity.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if subject.Id == uuid.Nil {
		subject.Id = uuid.New()
	}
	r.subjects = append(r.subjects, subject)
	return nil
}

func (r *fakeSubjectRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subjects {
		if s.Id == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubjectRepo) FindAll(ctx context.Context) ([]*entity.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Subject, len(r.subjects))
	copy(out, r.subjects)
	return out, nil
}

type fakePreferenceRepo struct {
	mu    sync.Mutex
	prefs []*entity.SubjectPreference
}

func (r *fakePreferenceRepo) Create(ctx context.Context, pref *entity.SubjectPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pref.Id == uuid.Nil {
		pref.Id = uuid.New()
	}
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = time.Now()
	}
	r.prefs = append(r.prefs, pref)
	return nil
}

func (r *fakePreferenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.prefs {
		if p.Id == id {
			r.prefs = append(r.prefs[:i], r.prefs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePreferenceRepo) CountByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	prefs, _ := r.FindAllByUser(ctx, userId)
	return int64(len(prefs)), nil
}

func (r *fakePreferenceRepo) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.SubjectPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SubjectPreference
	for _, p := range r.prefs {
		if p.UserId == userId {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSystemLogRepo struct {
	mu   sync.Mutex
	logs []*model.SystemLog
}

func (r *fakeSystemLogRepo) Create(ctx context.Context, log *model.SystemLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeSystemLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.SystemLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.SystemLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

// nopLogger satisfies logger.ILogger for tests that do not inspect logs.
type nopLogger struct{}

func (nopLogger) Debug(module string, message string, details map[string]interface{}) {}
func (nopLogger) Info(module string, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module string, message string, details map[string]interface{})  {}
func (nopLogger) Error(module string, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                         { return nil }
