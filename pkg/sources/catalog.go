package sources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tenrai/leitor/pkg/data"
)

// Catalog talks to the remote works/chapters REST API. Responses use the
// API's obr_/cap_ field naming; everything is converted to data types at
// this boundary.
type Catalog struct {
	api *resty.Client
}

func NewCatalog(baseURL, token string) *Catalog {
	api := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() == http.StatusTooManyRequests
		})
	return &Catalog{api: api}
}

type workDTO struct {
	ID          int        `json:"obr_id"`
	Name        string     `json:"obr_nome"`
	Description string     `json:"obr_descricao"`
	Image       string     `json:"obr_imagem"`
	Format      *formatDTO `json:"formato"`
	Status      *statusDTO `json:"status"`
	Tags        []tagDTO   `json:"tags"`
	Chapters    []capDTO   `json:"capitulos"`
}

type formatDTO struct {
	ID   int    `json:"fmt_id"`
	Name string `json:"fmt_nome"`
}

type statusDTO struct {
	ID   int    `json:"stt_id"`
	Name string `json:"stt_nome"`
}

type tagDTO struct {
	ID   int    `json:"tag_id"`
	Name string `json:"tag_nome"`
}

type capDTO struct {
	ID         int        `json:"cap_id"`
	Name       string     `json:"cap_nome"`
	Number     float64    `json:"cap_numero"`
	CreatedAt  time.Time  `json:"cap_criado_em"`
	ReleasedAt *time.Time `json:"cap_liberar_em"`
}

type chapterDTO struct {
	ID     int       `json:"cap_id"`
	Name   string    `json:"cap_nome"`
	Number float64   `json:"cap_numero"`
	Pages  []pageDTO `json:"cap_paginas"`
	Work   workDTO   `json:"obra"`
	Prev   *capDTO   `json:"cap_anterior"`
	Next   *capDTO   `json:"cap_proximo"`
}

type pageDTO struct {
	Path string `json:"path"`
}

func (w *workDTO) toSummary() data.WorkSummary {
	return data.WorkSummary{
		ID:       w.ID,
		Name:     w.Name,
		Image:    w.Image,
		Chapters: toChapterSummaries(w.Chapters),
	}
}

func (w *workDTO) toWork() *data.Work {
	out := &data.Work{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Image:       w.Image,
		Chapters:    toChapterSummaries(w.Chapters),
	}
	if w.Format != nil {
		out.Format = w.Format.Name
	}
	if w.Status != nil {
		out.Status = w.Status.Name
	}
	for _, t := range w.Tags {
		out.Tags = append(out.Tags, data.Tag{ID: t.ID, Name: t.Name})
	}
	return out
}

func (c *capDTO) toSummary() data.ChapterSummary {
	created := c.CreatedAt
	if c.ReleasedAt != nil && !c.ReleasedAt.IsZero() {
		created = *c.ReleasedAt
	}
	return data.ChapterSummary{ID: c.ID, Name: c.Name, Number: c.Number, CreatedAt: created}
}

func toChapterSummaries(caps []capDTO) []data.ChapterSummary {
	if len(caps) == 0 {
		return nil
	}
	out := make([]data.ChapterSummary, len(caps))
	for i := range caps {
		out[i] = caps[i].toSummary()
	}
	return out
}

func (c *Catalog) get(ctx context.Context, path string, params map[string]string, v any) error {
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(v).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}
	return nil
}

func (c *Catalog) Updates(ctx context.Context, page, limit int) ([]data.WorkSummary, error) {
	var out struct {
		Works []workDTO `json:"obras"`
	}
	err := c.get(ctx, "/obras/atualizacoes", map[string]string{
		"pagina": strconv.Itoa(page),
		"limite": strconv.Itoa(limit),
		"gen_id": "1",
	}, &out)
	if err != nil {
		return nil, err
	}
	return toSummaries(out.Works), nil
}

func (c *Catalog) Search(ctx context.Context, page, limit int, q SearchQuery) ([]data.WorkSummary, error) {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "ultima_atualizacao"
	}
	direction := "DESC"
	if q.Ascending {
		direction = "ASC"
	}
	params := map[string]string{
		"pagina":         strconv.Itoa(page),
		"limite":         strconv.Itoa(limit),
		"gen_id":         "1",
		"todos_generos":  "0",
		"orderBy":        orderBy,
		"orderDirection": direction,
	}
	if q.Name != "" {
		params["nome"] = q.Name
	}
	if len(q.TagIDs) > 0 {
		params["tag_ids"] = joinIDs(q.TagIDs)
	}
	if len(q.StatusIDs) > 0 {
		params["stt_id"] = joinIDs(q.StatusIDs)
	}

	var out struct {
		Works []workDTO `json:"obras"`
	}
	if err := c.get(ctx, "/obras/search", params, &out); err != nil {
		return nil, err
	}
	return toSummaries(out.Works), nil
}

func (c *Catalog) Ranking(ctx context.Context, limit int) ([]data.WorkSummary, error) {
	var out struct {
		Works []workDTO `json:"obras"`
	}
	err := c.get(ctx, "/obras/ranking", map[string]string{
		"limite": strconv.Itoa(limit),
		"gen_id": "1",
	}, &out)
	if err != nil {
		return nil, err
	}
	return toSummaries(out.Works), nil
}

func (c *Catalog) Work(ctx context.Context, slug string) (*data.Work, error) {
	var out workDTO
	if err := c.get(ctx, "/obras/"+slug, nil, &out); err != nil {
		return nil, err
	}
	return out.toWork(), nil
}

func (c *Catalog) Chapter(ctx context.Context, id int) (*data.Chapter, error) {
	var out chapterDTO
	if err := c.get(ctx, "/capitulos/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	ch := &data.Chapter{
		ID:     out.ID,
		Name:   out.Name,
		Number: out.Number,
		Work:   out.Work.toSummary(),
	}
	for _, p := range out.Pages {
		ch.Pages = append(ch.Pages, data.Page{Path: p.Path})
	}
	if out.Prev != nil {
		prev := out.Prev.toSummary()
		ch.Prev = &prev
	}
	if out.Next != nil {
		next := out.Next.toSummary()
		ch.Next = &next
	}
	return ch, nil
}

func (c *Catalog) Filters(ctx context.Context) (*data.Filters, error) {
	var out struct {
		Tags     []tagDTO    `json:"tags"`
		Statuses []statusDTO `json:"status"`
	}
	if err := c.get(ctx, "/obras/filtros", nil, &out); err != nil {
		return nil, err
	}
	f := &data.Filters{}
	for _, t := range out.Tags {
		f.Tags = append(f.Tags, data.Tag{ID: t.ID, Name: t.Name})
	}
	for _, s := range out.Statuses {
		f.Statuses = append(f.Statuses, data.Status{ID: s.ID, Name: s.Name})
	}
	return f, nil
}

func toSummaries(works []workDTO) []data.WorkSummary {
	out := make([]data.WorkSummary, len(works))
	for i := range works {
		out[i] = works[i].toSummary()
	}
	return out
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
