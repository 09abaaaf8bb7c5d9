package services

import (
	"context"
	"fmt"

	"github.com/tenrai/leitor/pkg/backend"
	"github.com/tenrai/leitor/pkg/config"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/sources"
	"github.com/tenrai/leitor/pkg/utils"
)

// Registry wires the whole service graph from the config. Both the TUI
// and the CLI commands build one of these.
type Registry struct {
	Config   config.Config
	Source   sources.Source
	Backend  *backend.Client
	Rows     *backend.Store
	Local    *data.Store
	Sessions *backend.Provider
	Resolver *utils.Resolver

	Notices     *NoticeCenter
	Library     *Library
	History     *History
	Reader      *Reader
	Profiles    *Profiles
	Downloader  *Downloader
	Diagnostics *Diagnostics

	WorksCache PageCache[data.WorkSummary]
}

func NewRegistry(cfg config.Config) (*Registry, error) {
	local, err := data.NewLocalStore()
	if err != nil {
		return nil, fmt.Errorf("abrir armazenamento local: %w", err)
	}

	source := sources.NewCatalog(cfg.API.BaseURL, cfg.API.Token)
	client := backend.New(cfg.Backend.URL, cfg.Backend.AnonKey, local)
	rows := backend.NewStore(client)
	sessions := backend.NewProvider(client)
	client.OnAuthChange(sessions.HandleEvent)

	resolver := &utils.Resolver{CDNRoot: cfg.CDN.Root, Generation: cfg.CDN.Generation}
	notices := NewNoticeCenter()
	history := NewHistory(sessions, rows)

	r := &Registry{
		Config:     cfg,
		Source:     source,
		Backend:    client,
		Rows:       rows,
		Local:      local,
		Sessions:   sessions,
		Resolver:   resolver,
		Notices:    notices,
		Library:    NewLibrary(sessions, rows, notices),
		History:    history,
		Reader:     NewReader(source, history),
		Profiles:   NewProfiles(sessions, rows, client),
		Downloader: NewDownloader(source, resolver, cfg.Download.Dir),
		WorksCache: NewPersistentCache[data.WorkSummary](local),
	}
	r.Diagnostics = NewDiagnostics(source,
		func(ctx context.Context) error {
			_, err := client.CurrentSession(ctx)
			return err
		},
		func(ctx context.Context, table string) error {
			var rows []map[string]any
			return client.From(table).Limit(1).Get(ctx, &rows)
		},
	)
	return r, nil
}

// UpdatesFetch returns the page fetch for the home listing.
func (r *Registry) UpdatesFetch() FetchPage[data.WorkSummary] {
	limit := r.Config.API.PageSize
	return func(ctx context.Context, page int) ([]data.WorkSummary, error) {
		return r.Source.Updates(ctx, page, limit)
	}
}

// SearchFetch returns the page fetch for a catalog query.
func (r *Registry) SearchFetch(q sources.SearchQuery) FetchPage[data.WorkSummary] {
	limit := r.Config.API.PageSize
	return func(ctx context.Context, page int) ([]data.WorkSummary, error) {
		return r.Source.Search(ctx, page, limit, q)
	}
}

// FeaturedWorks resolves the pinned slugs into work summaries, keeping
// the configured order and skipping slugs that fail to load. With no
// slugs pinned it falls back to the catalog ranking.
func FeaturedWorks(ctx context.Context, source sources.Source, slugs []string, rankingLimit int) ([]data.WorkSummary, error) {
	if len(slugs) == 0 {
		return source.Ranking(ctx, rankingLimit)
	}
	var out []data.WorkSummary
	for _, slug := range slugs {
		work, err := source.Work(ctx, slug)
		if err != nil || work == nil {
			continue
		}
		out = append(out, work.Summary())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("nenhuma obra em destaque carregou")
	}
	return out, nil
}

// Featured feeds the home screen strip.
func (r *Registry) Featured(ctx context.Context) ([]data.WorkSummary, error) {
	return FeaturedWorks(ctx, r.Source, r.Config.Featured.Slugs, r.Config.API.RankingLimit)
}

// NewWorksController builds a listing controller backed by the shared
// works cache.
func (r *Registry) NewWorksController() *Controller[data.WorkSummary] {
	return NewController(func(w data.WorkSummary) string {
		return fmt.Sprint(w.ID)
	}, r.Config.API.PageSize, r.WorksCache)
}

// Close releases everything the registry holds open.
func (r *Registry) Close() {
	r.Downloader.Close()
	if r.Local != nil {
		r.Local.Close()
	}
}
