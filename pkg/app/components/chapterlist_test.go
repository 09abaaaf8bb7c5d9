package components

import (
	"strings"
	"testing"

	"github.com/tenrai/leitor/pkg/data"
)

func sampleChapters() []data.ChapterSummary {
	return []data.ChapterSummary{
		{ID: 3, Number: 3},
		{ID: 1, Number: 1},
		{ID: 2, Number: 2},
	}
}

func TestChapterListDefaultsNewestFirst(t *testing.T) {
	list := NewChapterList()
	list.SetChapters(sampleChapters())

	chapters := list.Chapters()
	for i, want := range []float64{3, 2, 1} {
		if chapters[i].Number != want {
			t.Errorf("chapters[%d] = %v, want %v", i, chapters[i].Number, want)
		}
	}
}

func TestChapterListToggleOrderKeepsSelection(t *testing.T) {
	list := NewChapterList()
	list.SetChapters(sampleChapters())
	list.Next() // select chapter 2

	if list.Selected().ID != 2 {
		t.Fatalf("setup: selected %d, want 2", list.Selected().ID)
	}

	list.ToggleOrder()
	if !list.Ascending() {
		t.Error("toggle should switch to ascending")
	}
	if list.Chapters()[0].Number != 1 {
		t.Errorf("ascending order should start at 1, got %v", list.Chapters()[0].Number)
	}
	if list.Selected().ID != 2 {
		t.Errorf("toggle must keep selection on chapter 2, got %d", list.Selected().ID)
	}
}

func TestChapterListReadDimming(t *testing.T) {
	list := NewChapterList()
	list.SetChapters(sampleChapters())
	list.SetReadSet(map[int]bool{1: true})

	view := list.View()
	if !strings.Contains(view, "Capítulo 1") {
		t.Fatal("read chapter must stay in the list")
	}
	// The read chapter stays selectable.
	list.Next()
	list.Next()
	if list.Selected().ID != 1 {
		t.Errorf("read chapter must be selectable, got %d", list.Selected().ID)
	}
}

func TestChapterListBounds(t *testing.T) {
	list := NewChapterList()
	list.SetChapters(sampleChapters())

	list.Prev()
	if list.SelectedIndex != 0 {
		t.Error("Prev at top must stay put")
	}
	list.Next()
	list.Next()
	list.Next()
	if list.SelectedIndex != 2 {
		t.Errorf("Next at bottom must stay put, got %d", list.SelectedIndex)
	}
}

func TestChapterListEmpty(t *testing.T) {
	list := NewChapterList()
	if list.Selected() != nil {
		t.Error("empty list has no selection")
	}
	if !strings.Contains(list.View(), "Nenhum capítulo") {
		t.Error("empty list should render placeholder")
	}
}
