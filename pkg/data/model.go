package data

import (
	"strconv"
	"time"
)

// WorkSummary is the list-view shape of a work: enough to render a card
// and link into the detail route. Chapters carries the latest releases
// on the updates feed and the full list when nested under a Chapter.
type WorkSummary struct {
	ID       int
	Name     string
	Image    string
	Chapters []ChapterSummary
}

type ChapterSummary struct {
	ID        int
	Number    float64
	Name      string
	CreatedAt time.Time
}

// DisplayName falls back to the conventional "Capítulo {n}" label when
// the chapter has no name of its own.
func (c ChapterSummary) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return "Capítulo " + FormatNumber(c.Number)
}

// ShortName is the compact list-row variant of DisplayName ("Cap. 12").
func (c ChapterSummary) ShortName() string {
	if c.Name != "" {
		return c.Name
	}
	return "Cap. " + FormatNumber(c.Number)
}

// FormatNumber renders a chapter number without trailing zeros (10, 10.5).
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Work is the detail-view shape, fetched by slug.
type Work struct {
	ID          int
	Name        string
	Description string
	Image       string
	Format      string
	Status      string
	Tags        []Tag
	Chapters    []ChapterSummary
}

// Summary projects the detail shape back to the list shape, for code
// that keys on works (library, downloads).
func (w *Work) Summary() WorkSummary {
	return WorkSummary{ID: w.ID, Name: w.Name, Image: w.Image, Chapters: w.Chapters}
}

// Chapter is the reader payload: ordered pages plus the parent work
// summary (with its full chapter list) and optional sibling references.
type Chapter struct {
	ID     int
	Number float64
	Name   string
	Pages  []Page
	Work   WorkSummary
	Prev   *ChapterSummary
	Next   *ChapterSummary
}

// Page is an image path; order within the chapter is significant and
// fixed by the API response.
type Page struct {
	Path string
}

type Tag struct {
	ID   int
	Name string
}

type Status struct {
	ID   int
	Name string
}

// Filters holds the values the catalog exposes for filtering.
type Filters struct {
	Tags     []Tag
	Statuses []Status
}

// LibraryEntry is a user's saved work. Keyed by (user, work); removal
// and re-add replaces the row, it is never updated in place.
type LibraryEntry struct {
	UserID    string
	WorkID    int
	WorkName  string
	WorkImage string
	AddedAt   time.Time
}

// HistoryEntry records that a user opened a chapter. Keyed by
// (user, chapter); re-reading updates ReadAt instead of duplicating.
type HistoryEntry struct {
	UserID        string
	WorkID        int
	ChapterID     int
	WorkName      string
	ChapterName   string
	ChapterNumber float64
	WorkImage     string
	ReadAt        time.Time
}

type Profile struct {
	UserID    string
	AvatarURL string
	BannerURL string
	UpdatedAt time.Time
}
