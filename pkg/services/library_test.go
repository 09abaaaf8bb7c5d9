package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tenrai/leitor/pkg/backend"
	"github.com/tenrai/leitor/pkg/data"
)

type fakeSessions struct {
	user *backend.User
}

func (f *fakeSessions) User() *backend.User { return f.user }

type fakeLibraryStore struct {
	upsertErr error
	deleteErr error
	upserts   []data.LibraryEntry
	deletes   []int
	ids       []int
}

func (f *fakeLibraryStore) LibraryWorkIDs(ctx context.Context, userID string) ([]int, error) {
	return f.ids, nil
}

func (f *fakeLibraryStore) Library(ctx context.Context, userID string) ([]data.LibraryEntry, error) {
	return nil, nil
}

func (f *fakeLibraryStore) UpsertLibraryEntry(ctx context.Context, e data.LibraryEntry) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, e)
	return nil
}

func (f *fakeLibraryStore) DeleteLibraryEntry(ctx context.Context, userID string, workID int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, workID)
	return nil
}

func signedIn() *fakeSessions {
	return &fakeSessions{user: &backend.User{ID: "u1", Email: "u1@example.com"}}
}

func TestLibraryAddAppliesOptimistically(t *testing.T) {
	store := &fakeLibraryStore{}
	lib := NewLibrary(signedIn(), store, NewNoticeCenter())

	var sawDuringSync bool
	work := data.WorkSummary{ID: 7, Name: "Torre Azul", Image: "capa.jpg"}
	lib.SetOnChange(func() {
		if lib.Contains(7) {
			sawDuringSync = true
		}
	})
	if err := lib.Add(context.Background(), work); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sawDuringSync {
		t.Error("local state must flip before the sync completes")
	}
	if !lib.Contains(7) {
		t.Error("work should be in library")
	}
	if len(store.upserts) != 1 || store.upserts[0].WorkID != 7 || store.upserts[0].UserID != "u1" {
		t.Errorf("unexpected upserts: %+v", store.upserts)
	}
}

func TestLibraryAddRejectedWithoutSession(t *testing.T) {
	store := &fakeLibraryStore{}
	notices := NewNoticeCenter()
	lib := NewLibrary(&fakeSessions{}, store, notices)

	err := lib.Add(context.Background(), data.WorkSummary{ID: 7})
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if lib.Contains(7) {
		t.Error("nothing may be applied locally without a session")
	}
	if len(store.upserts) != 0 {
		t.Error("no remote call without a session")
	}
	if notices.Current() != "Você precisa estar logado" {
		t.Errorf("unexpected notice %q", notices.Current())
	}
}

func TestLibraryAddRollsBackOnFailure(t *testing.T) {
	store := &fakeLibraryStore{upsertErr: errors.New("rede fora")}
	notices := NewNoticeCenter()
	notices.SetTTL(time.Minute)
	var noticeCount int
	notices.SetOnChange(func() {
		if notices.Current() != "" {
			noticeCount++
		}
	})
	lib := NewLibrary(signedIn(), store, notices)

	err := lib.Add(context.Background(), data.WorkSummary{ID: 7})
	if err == nil {
		t.Fatal("expected sync error")
	}
	if lib.Contains(7) {
		t.Error("failed add must roll back")
	}
	if noticeCount != 1 {
		t.Errorf("expected exactly one notice, got %d", noticeCount)
	}
	if notices.Current() != "Erro ao adicionar: rede fora" {
		t.Errorf("unexpected notice %q", notices.Current())
	}
}

func TestLibraryRemoveRollsBackOnFailure(t *testing.T) {
	store := &fakeLibraryStore{ids: []int{7}, deleteErr: errors.New("rede fora")}
	notices := NewNoticeCenter()
	lib := NewLibrary(signedIn(), store, notices)
	if err := lib.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := lib.Remove(context.Background(), 7); err == nil {
		t.Fatal("expected sync error")
	}
	if !lib.Contains(7) {
		t.Error("failed remove must restore the entry")
	}
	if notices.Current() != "Erro ao remover: rede fora" {
		t.Errorf("unexpected notice %q", notices.Current())
	}
}

func TestLibraryToggle(t *testing.T) {
	store := &fakeLibraryStore{}
	lib := NewLibrary(signedIn(), store, NewNoticeCenter())
	work := data.WorkSummary{ID: 7, Name: "Torre Azul"}

	if err := lib.Toggle(context.Background(), work); err != nil {
		t.Fatalf("Toggle add: %v", err)
	}
	if !lib.Contains(7) {
		t.Fatal("toggle should add")
	}
	if err := lib.Toggle(context.Background(), work); err != nil {
		t.Fatalf("Toggle remove: %v", err)
	}
	if lib.Contains(7) {
		t.Fatal("toggle should remove")
	}
	if len(store.upserts) != 1 || len(store.deletes) != 1 {
		t.Errorf("expected one upsert and one delete, got %d/%d", len(store.upserts), len(store.deletes))
	}
}

func TestLibraryRefreshSignedOutClears(t *testing.T) {
	sessions := signedIn()
	store := &fakeLibraryStore{ids: []int{1, 2}}
	lib := NewLibrary(sessions, store, NewNoticeCenter())
	if err := lib.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !lib.Contains(1) {
		t.Fatal("expected seeded library")
	}

	sessions.user = nil
	if err := lib.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh signed out: %v", err)
	}
	if lib.Contains(1) {
		t.Error("signed-out refresh must clear the set")
	}
}
