package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *Catalog {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCatalog(srv.URL, "test-token")
}

func TestCatalogUpdates(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/obras/atualizacoes", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("pagina"))
		assert.Equal(t, "24", r.URL.Query().Get("limite"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"obras":[
			{"obr_id":7,"obr_nome":"Necromante Catastrófico","obr_imagem":"capa.jpg",
			 "capitulos":[{"cap_id":90,"cap_nome":"","cap_numero":12,"cap_criado_em":"2025-06-01T10:00:00Z"}]}
		]}`))
	})

	works, err := c.Updates(context.Background(), 2, 24)
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Equal(t, 7, works[0].ID)
	assert.Equal(t, "Necromante Catastrófico", works[0].Name)
	require.Len(t, works[0].Chapters, 1)
	assert.Equal(t, "Capítulo 12", works[0].Chapters[0].DisplayName())
}

func TestCatalogSearchParams(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/obras/search", r.URL.Path)
		assert.Equal(t, "espada", q.Get("nome"))
		assert.Equal(t, "1,3", q.Get("tag_ids"))
		assert.Equal(t, "2", q.Get("stt_id"))
		assert.Equal(t, "ultima_atualizacao", q.Get("orderBy"))
		assert.Equal(t, "DESC", q.Get("orderDirection"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"obras":[]}`))
	})

	works, err := c.Search(context.Background(), 1, 44, SearchQuery{
		Name:      "espada",
		TagIDs:    []int{1, 3},
		StatusIDs: []int{2},
	})
	require.NoError(t, err)
	assert.Empty(t, works)
}

func TestCatalogWork(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/obras/necromante-catastrofico", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"obr_id":7,"obr_nome":"Necromante Catastrófico","obr_descricao":"desc",
			"obr_imagem":"scans/1/obras/7/capa.jpg",
			"formato":{"fmt_id":1,"fmt_nome":"Manhwa"},
			"status":{"stt_id":2,"stt_nome":"Em andamento"},
			"tags":[{"tag_id":4,"tag_nome":"Ação"}],
			"capitulos":[
				{"cap_id":90,"cap_numero":2,"cap_criado_em":"2025-06-01T10:00:00Z","cap_liberar_em":"2025-06-02T10:00:00Z"},
				{"cap_id":89,"cap_numero":1,"cap_criado_em":"2025-05-01T10:00:00Z"}
			]}`))
	})

	work, err := c.Work(context.Background(), "necromante-catastrofico")
	require.NoError(t, err)
	assert.Equal(t, "Manhwa", work.Format)
	assert.Equal(t, "Em andamento", work.Status)
	require.Len(t, work.Tags, 1)
	assert.Equal(t, "Ação", work.Tags[0].Name)
	require.Len(t, work.Chapters, 2)
	// the release timestamp wins over creation when present
	assert.Equal(t, "2025-06-02", work.Chapters[0].CreatedAt.Format("2006-01-02"))
}

func TestCatalogChapter(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/capitulos/90", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cap_id":90,"cap_nome":"Capítulo 2","cap_numero":2,
			"cap_paginas":[{"path":"scans/1/obras/7/caps/2/001.jpg"},{"path":"scans/1/obras/7/caps/2/002.jpg"}],
			"obra":{"obr_id":7,"obr_nome":"Necromante Catastrófico","obr_imagem":"capa.jpg",
				"capitulos":[{"cap_id":89,"cap_numero":1},{"cap_id":90,"cap_numero":2}]},
			"cap_anterior":{"cap_id":89,"cap_numero":1},
			"cap_proximo":null}`))
	})

	ch, err := c.Chapter(context.Background(), 90)
	require.NoError(t, err)
	assert.Equal(t, 90, ch.ID)
	require.Len(t, ch.Pages, 2)
	assert.Equal(t, "scans/1/obras/7/caps/2/001.jpg", ch.Pages[0].Path)
	require.NotNil(t, ch.Prev)
	assert.Equal(t, 89, ch.Prev.ID)
	assert.Nil(t, ch.Next)
	assert.Equal(t, 7, ch.Work.ID)
	assert.Len(t, ch.Work.Chapters, 2)
}

func TestCatalogFilters(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/obras/filtros", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tags":[{"tag_id":1,"tag_nome":"Ação"}],"status":[{"stt_id":2,"stt_nome":"Completo"}]}`))
	})

	f, err := c.Filters(context.Background())
	require.NoError(t, err)
	require.Len(t, f.Tags, 1)
	require.Len(t, f.Statuses, 1)
	assert.Equal(t, "Completo", f.Statuses[0].Name)
}

func TestCatalogHTTPError(t *testing.T) {
	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Updates(context.Background(), 1, 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCatalogAbortedRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"obras":[]}`))
	})

	_, err := c.Updates(ctx, 1, 24)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
