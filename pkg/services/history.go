package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tenrai/leitor/pkg/data"
)

// HistoryStore is the remote persistence for reading history.
type HistoryStore interface {
	History(ctx context.Context, userID string) ([]data.HistoryEntry, error)
	UpsertHistoryEntry(ctx context.Context, e data.HistoryEntry) error
	ReadChapterIDs(ctx context.Context, userID string, workIDs []int) ([]int, error)
}

// History records which chapters the user opened. Rereading a chapter
// updates its timestamp instead of adding a second row.
type History struct {
	sessions SessionGetter
	store    HistoryStore
}

func NewHistory(sessions SessionGetter, store HistoryStore) *History {
	return &History{sessions: sessions, store: store}
}

// Record marks a chapter as read now. Signed out it is a no-op.
func (h *History) Record(ctx context.Context, work data.WorkSummary, chapter data.ChapterSummary) error {
	user := h.sessions.User()
	if user == nil {
		return nil
	}
	err := h.store.UpsertHistoryEntry(ctx, data.HistoryEntry{
		UserID:        user.ID,
		WorkID:        work.ID,
		ChapterID:     chapter.ID,
		WorkName:      work.Name,
		ChapterName:   chapter.DisplayName(),
		ChapterNumber: chapter.Number,
		WorkImage:     work.Image,
		ReadAt:        time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("registrar leitura: %w", err)
	}
	return nil
}

// List returns the reading history, most recent first.
func (h *History) List(ctx context.Context) ([]data.HistoryEntry, error) {
	user := h.sessions.User()
	if user == nil {
		return nil, nil
	}
	entries, err := h.store.History(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("carregar histórico: %w", err)
	}
	return entries, nil
}

// ReadSet returns the ids of chapters already read within the given
// works, for dimming them in chapter lists. Signed out it is empty.
func (h *History) ReadSet(ctx context.Context, workIDs []int) (map[int]bool, error) {
	user := h.sessions.User()
	if user == nil {
		return map[int]bool{}, nil
	}
	ids, err := h.store.ReadChapterIDs(ctx, user.ID, workIDs)
	if err != nil {
		return nil, fmt.Errorf("carregar capítulos lidos: %w", err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
