package sources

import (
	"context"

	"github.com/tenrai/leitor/pkg/data"
)

// SearchQuery carries the catalog search filters. Zero values mean
// "no filter"; ordering defaults to most recently updated first.
type SearchQuery struct {
	Name      string
	TagIDs    []int
	StatusIDs []int
	OrderBy   string
	Ascending bool
}

type Source interface {
	Updates(ctx context.Context, page, limit int) ([]data.WorkSummary, error)
	Search(ctx context.Context, page, limit int, q SearchQuery) ([]data.WorkSummary, error)
	Ranking(ctx context.Context, limit int) ([]data.WorkSummary, error)
	Work(ctx context.Context, slug string) (*data.Work, error)
	Chapter(ctx context.Context, id int) (*data.Chapter, error)
	Filters(ctx context.Context) (*data.Filters, error)
}
