package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tenrai/leitor/pkg/backend"
	"github.com/tenrai/leitor/pkg/data"
)

// ErrNotSignedIn rejects a personal-collection mutation attempted
// without a session. Nothing is applied locally in that case.
var ErrNotSignedIn = errors.New("not signed in")

// SessionGetter exposes the current user; satisfied by the auth
// provider.
type SessionGetter interface {
	User() *backend.User
}

// LibraryStore is the remote persistence the library needs.
type LibraryStore interface {
	LibraryWorkIDs(ctx context.Context, userID string) ([]int, error)
	Library(ctx context.Context, userID string) ([]data.LibraryEntry, error)
	UpsertLibraryEntry(ctx context.Context, e data.LibraryEntry) error
	DeleteLibraryEntry(ctx context.Context, userID string, workID int) error
}

// Library tracks which works the user saved. Mutations apply locally
// first so the toggle flips instantly, then sync to the backend; a sync
// failure rolls the local change back and surfaces a notice.
type Library struct {
	sessions SessionGetter
	store    LibraryStore
	notices  *NoticeCenter

	mu       sync.Mutex
	ids      map[int]bool
	entries  []data.LibraryEntry
	onChange func()
}

func NewLibrary(sessions SessionGetter, store LibraryStore, notices *NoticeCenter) *Library {
	return &Library{
		sessions: sessions,
		store:    store,
		notices:  notices,
		ids:      map[int]bool{},
	}
}

func (l *Library) SetOnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Refresh reloads the saved-work id set for the signed-in user. Signed
// out it clears the set.
func (l *Library) Refresh(ctx context.Context) error {
	user := l.sessions.User()
	if user == nil {
		l.mu.Lock()
		l.ids = map[int]bool{}
		l.entries = nil
		l.mu.Unlock()
		l.notify()
		return nil
	}
	ids, err := l.store.LibraryWorkIDs(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("carregar biblioteca: %w", err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	l.mu.Lock()
	l.ids = set
	l.mu.Unlock()
	l.notify()
	return nil
}

// Entries returns the full library listing, newest first.
func (l *Library) Entries(ctx context.Context) ([]data.LibraryEntry, error) {
	user := l.sessions.User()
	if user == nil {
		return nil, nil
	}
	entries, err := l.store.Library(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("carregar biblioteca: %w", err)
	}
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return entries, nil
}

func (l *Library) Contains(workID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ids[workID]
}

// Toggle adds the work when absent and removes it when present.
func (l *Library) Toggle(ctx context.Context, work data.WorkSummary) error {
	if l.Contains(work.ID) {
		return l.Remove(ctx, work.ID)
	}
	return l.Add(ctx, work)
}

// Add saves a work. Without a session nothing changes locally and the
// sign-in notice shows.
func (l *Library) Add(ctx context.Context, work data.WorkSummary) error {
	user := l.sessions.User()
	if user == nil {
		l.notices.Show("Você precisa estar logado")
		return ErrNotSignedIn
	}

	l.mu.Lock()
	l.ids[work.ID] = true
	l.mu.Unlock()
	l.notify()

	err := l.store.UpsertLibraryEntry(ctx, data.LibraryEntry{
		UserID:    user.ID,
		WorkID:    work.ID,
		WorkName:  work.Name,
		WorkImage: work.Image,
		AddedAt:   time.Now().UTC(),
	})
	if err != nil {
		l.mu.Lock()
		delete(l.ids, work.ID)
		l.mu.Unlock()
		l.notify()
		l.notices.Show(fmt.Sprintf("Erro ao adicionar: %v", err))
		return err
	}
	l.notices.Show("Adicionado à biblioteca")
	return nil
}

// Remove drops a work from the library.
func (l *Library) Remove(ctx context.Context, workID int) error {
	user := l.sessions.User()
	if user == nil {
		l.notices.Show("Você precisa estar logado")
		return ErrNotSignedIn
	}

	l.mu.Lock()
	delete(l.ids, workID)
	l.mu.Unlock()
	l.notify()

	if err := l.store.DeleteLibraryEntry(ctx, user.ID, workID); err != nil {
		l.mu.Lock()
		l.ids[workID] = true
		l.mu.Unlock()
		l.notify()
		l.notices.Show(fmt.Sprintf("Erro ao remover: %v", err))
		return err
	}
	l.notices.Show("Removido da biblioteca")
	return nil
}

func (l *Library) notify() {
	l.mu.Lock()
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}
