package services

import (
	"context"
	"testing"

	"github.com/tenrai/leitor/pkg/data"
)

func TestFeaturedWorksResolvesPinnedSlugs(t *testing.T) {
	catalog := &fakeCatalog{works: map[string]*data.Work{
		"torre-azul": {ID: 1, Name: "Torre Azul"},
		"mar-de-aco": {ID: 2, Name: "Mar de Aço"},
		"ultima-lua": {ID: 3, Name: "Última Lua"},
	}}

	works, err := FeaturedWorks(context.Background(), catalog,
		[]string{"ultima-lua", "torre-azul"}, 10)
	if err != nil {
		t.Fatalf("FeaturedWorks: %v", err)
	}
	if len(works) != 2 {
		t.Fatalf("Expected 2 works, got %d", len(works))
	}
	if works[0].Name != "Última Lua" || works[1].Name != "Torre Azul" {
		t.Errorf("Pinned order not kept: %v", works)
	}
}

func TestFeaturedWorksSkipsMissingSlugs(t *testing.T) {
	catalog := &fakeCatalog{works: map[string]*data.Work{
		"torre-azul": {ID: 1, Name: "Torre Azul"},
	}}

	works, err := FeaturedWorks(context.Background(), catalog,
		[]string{"sumida", "torre-azul"}, 10)
	if err != nil {
		t.Fatalf("FeaturedWorks: %v", err)
	}
	if len(works) != 1 || works[0].Name != "Torre Azul" {
		t.Errorf("Expected only the resolvable slug, got %v", works)
	}
}

func TestFeaturedWorksErrorsWhenNothingResolves(t *testing.T) {
	catalog := &fakeCatalog{}

	if _, err := FeaturedWorks(context.Background(), catalog,
		[]string{"sumida"}, 10); err == nil {
		t.Fatal("Expected an error when every pinned slug fails")
	}
}

func TestFeaturedWorksFallsBackToRanking(t *testing.T) {
	catalog := &fakeCatalog{ranking: []data.WorkSummary{
		{ID: 1, Name: "Torre Azul"},
		{ID: 2, Name: "Mar de Aço"},
	}}

	works, err := FeaturedWorks(context.Background(), catalog, nil, 10)
	if err != nil {
		t.Fatalf("FeaturedWorks: %v", err)
	}
	if len(works) != 2 || works[0].Name != "Torre Azul" {
		t.Errorf("Expected the ranking, got %v", works)
	}
}
