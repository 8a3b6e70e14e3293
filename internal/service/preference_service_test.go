package service

import (
	"context"
	"testing"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/pkg/serverutils"

	"github.com/google/uuid"
)

func seedSubjects(t *testing.T, uow *fakeUow, names ...string) []*entity.Subject {
	t.Helper()
	out := make([]*entity.Subject, len(names))
	for i, name := range names {
		s := &entity.Subject{Id: uuid.New(), Name: name}
		if err := uow.subjects.Create(context.Background(), s); err != nil {
			t.Fatalf("seed subject failed: %v", err)
		}
		out[i] = s
	}
	return out
}

func TestAddPreferenceEnforcesCap(t *testing.T) {
	uow := newFakeUow()
	svc := NewPreferenceService(&fakeFactory{uow: uow})
	subjects := seedSubjects(t, uow, "Contracts", "Torts", "Evidence", "Property")

	ctx := context.Background()
	userId := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := svc.Add(ctx, userId, subjects[i].Id); err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
	}

	// The 4th is rejected, nothing evicted.
	_, err := svc.Add(ctx, userId, subjects[3].Id)
	if !serverutils.IsValidation(err) {
		t.Fatalf("4th Add = %v, want validation error", err)
	}

	prefs, err := svc.List(ctx, userId)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(prefs) != 3 {
		t.Errorf("preference count = %d, want 3", len(prefs))
	}
}

func TestAddPreferenceUnknownSubject(t *testing.T) {
	uow := newFakeUow()
	svc := NewPreferenceService(&fakeFactory{uow: uow})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
	if !serverutils.IsValidation(err) {
		t.Errorf("Add with unknown subject = %v, want validation error", err)
	}
}

func TestCapIsPerUser(t *testing.T) {
	uow := newFakeUow()
	svc := NewPreferenceService(&fakeFactory{uow: uow})
	subjects := seedSubjects(t, uow, "Contracts", "Torts", "Evidence")

	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	for _, s := range subjects {
		if _, err := svc.Add(ctx, first, s.Id); err != nil {
			t.Fatalf("Add for first user failed: %v", err)
		}
	}

	// A full cap for one user must not block another.
	if _, err := svc.Add(ctx, second, subjects[0].Id); err != nil {
		t.Errorf("Add for second user = %v, want success", err)
	}
}

func TestRemoveFreesASlot(t *testing.T) {
	uow := newFakeUow()
	svc := NewPreferenceService(&fakeFactory{uow: uow})
	subjects := seedSubjects(t, uow, "Contracts", "Torts", "Evidence", "Property")

	ctx := context.Background()
	userId := uuid.New()

	var firstId uuid.UUID
	for i := 0; i < 3; i++ {
		pref, err := svc.Add(ctx, userId, subjects[i].Id)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if i == 0 {
			firstId = pref.Id
		}
	}

	if err := svc.Remove(ctx, userId, firstId); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := svc.Add(ctx, userId, subjects[3].Id); err != nil {
		t.Errorf("Add after remove = %v, want success", err)
	}
}

func TestRemoveChecksOwnership(t *testing.T) {
	uow := newFakeUow()
	svc := NewPreferenceService(&fakeFactory{uow: uow})
	subjects := seedSubjects(t, uow, "Contracts")

	ctx := context.Background()
	owner := uuid.New()
	pref, err := svc.Add(ctx, owner, subjects[0].Id)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Someone else's preference id is indistinguishable from a missing one.
	if err := svc.Remove(ctx, uuid.New(), pref.Id); !serverutils.IsValidation(err) {
		t.Errorf("Remove by non-owner = %v, want validation error", err)
	}

	prefs, _ := svc.List(ctx, owner)
	if len(prefs) != 1 {
		t.Errorf("owner lost a preference to a non-owner remove")
	}
}

func TestListSubjectsReturnsCatalog(t *testing.T) {
	uow := newFakeUow()
	svc := NewPreferenceService(&fakeFactory{uow: uow})
	seedSubjects(t, uow, "Contracts", "Torts")

	subjects, err := svc.ListSubjects(context.Background())
	if err != nil {
		t.Fatalf("ListSubjects failed: %v", err)
	}
	if len(subjects) != 2 {
		t.Errorf("catalog size = %d, want 2", len(subjects))
	}
}
