package backend

import (
	"context"
	"time"

	"github.com/tenrai/leitor/pkg/data"
)

// Table names on the managed backend.
const (
	libraryTable = "biblioteca_usuario"
	historyTable = "historico_leitura"
	profileTable = "user_profiles"
)

// Store is the typed facade over the row API for the user-owned
// collections: library, reading history and profile.
type Store struct {
	c *Client
}

func NewStore(c *Client) *Store {
	return &Store{c: c}
}

type libraryRow struct {
	UserID    string    `json:"usuario_id"`
	WorkID    int       `json:"obra_id"`
	WorkName  string    `json:"obr_nome"`
	WorkImage string    `json:"obr_imagem"`
	AddedAt   time.Time `json:"data_adicionada"`
}

type historyRow struct {
	UserID        string    `json:"usuario_id"`
	WorkID        int       `json:"obra_id"`
	ChapterID     int       `json:"capitulo_id"`
	WorkName      string    `json:"obr_nome"`
	ChapterName   string    `json:"cap_nome"`
	ChapterNumber float64   `json:"cap_numero"`
	WorkImage     string    `json:"obr_imagem"`
	ReadAt        time.Time `json:"data_leitura"`
}

type profileRow struct {
	UserID    string    `json:"user_id"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	BannerURL string    `json:"banner_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Store) LibraryWorkIDs(ctx context.Context, userID string) ([]int, error) {
	var rows []struct {
		WorkID int `json:"obra_id"`
	}
	err := s.c.From(libraryTable).
		Select("obra_id").
		Eq("usuario_id", userID).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.WorkID
	}
	return ids, nil
}

func (s *Store) Library(ctx context.Context, userID string) ([]data.LibraryEntry, error) {
	var rows []libraryRow
	err := s.c.From(libraryTable).
		Eq("usuario_id", userID).
		Order("data_adicionada", false).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]data.LibraryEntry, len(rows))
	for i, r := range rows {
		out[i] = data.LibraryEntry{
			UserID:    r.UserID,
			WorkID:    r.WorkID,
			WorkName:  r.WorkName,
			WorkImage: r.WorkImage,
			AddedAt:   r.AddedAt,
		}
	}
	return out, nil
}

func (s *Store) UpsertLibraryEntry(ctx context.Context, e data.LibraryEntry) error {
	return s.c.Upsert(ctx, libraryTable, libraryRow{
		UserID:    e.UserID,
		WorkID:    e.WorkID,
		WorkName:  e.WorkName,
		WorkImage: e.WorkImage,
		AddedAt:   e.AddedAt,
	}, "usuario_id,obra_id")
}

func (s *Store) DeleteLibraryEntry(ctx context.Context, userID string, workID int) error {
	return s.c.From(libraryTable).
		Eq("usuario_id", userID).
		Eq("obra_id", workID).
		Delete(ctx)
}

func (s *Store) History(ctx context.Context, userID string) ([]data.HistoryEntry, error) {
	var rows []historyRow
	err := s.c.From(historyTable).
		Eq("usuario_id", userID).
		Order("data_leitura", false).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]data.HistoryEntry, len(rows))
	for i, r := range rows {
		out[i] = data.HistoryEntry{
			UserID:        r.UserID,
			WorkID:        r.WorkID,
			ChapterID:     r.ChapterID,
			WorkName:      r.WorkName,
			ChapterName:   r.ChapterName,
			ChapterNumber: r.ChapterNumber,
			WorkImage:     r.WorkImage,
			ReadAt:        r.ReadAt,
		}
	}
	return out, nil
}

func (s *Store) UpsertHistoryEntry(ctx context.Context, e data.HistoryEntry) error {
	return s.c.Upsert(ctx, historyTable, historyRow{
		UserID:        e.UserID,
		WorkID:        e.WorkID,
		ChapterID:     e.ChapterID,
		WorkName:      e.WorkName,
		ChapterName:   e.ChapterName,
		ChapterNumber: e.ChapterNumber,
		WorkImage:     e.WorkImage,
		ReadAt:        e.ReadAt,
	}, "usuario_id,capitulo_id")
}

func (s *Store) ReadChapterIDs(ctx context.Context, userID string, workIDs []int) ([]int, error) {
	if len(workIDs) == 0 {
		return nil, nil
	}
	var rows []struct {
		ChapterID int `json:"capitulo_id"`
	}
	err := s.c.From(historyTable).
		Select("capitulo_id").
		Eq("usuario_id", userID).
		In("obra_id", workIDs).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ChapterID
	}
	return ids, nil
}

func (s *Store) Profile(ctx context.Context, userID string) (*data.Profile, error) {
	var rows []profileRow
	err := s.c.From(profileTable).
		Eq("user_id", userID).
		Limit(1).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &data.Profile{
		UserID:    r.UserID,
		AvatarURL: r.AvatarURL,
		BannerURL: r.BannerURL,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (s *Store) UpsertProfile(ctx context.Context, p data.Profile) error {
	return s.c.Upsert(ctx, profileTable, profileRow{
		UserID:    p.UserID,
		AvatarURL: p.AvatarURL,
		BannerURL: p.BannerURL,
		UpdatedAt: p.UpdatedAt,
	}, "user_id")
}
