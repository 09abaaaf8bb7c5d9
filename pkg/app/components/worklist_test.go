package components

import (
	"strings"
	"testing"
	"time"

	"github.com/tenrai/leitor/pkg/data"
)

func sampleWorks(n int) []data.WorkSummary {
	works := make([]data.WorkSummary, n)
	for i := range works {
		works[i] = data.WorkSummary{
			ID:   i + 1,
			Name: "Obra " + string(rune('A'+i)),
			Chapters: []data.ChapterSummary{
				{ID: i*10 + 1, Number: 1, CreatedAt: time.Now().Add(-time.Hour)},
			},
		}
	}
	return works
}

func TestWorkListNavigation(t *testing.T) {
	list := NewWorkList()
	list.SetItems(sampleWorks(3))

	if list.Selected().ID != 1 {
		t.Errorf("initial selection = %d, want 1", list.Selected().ID)
	}

	list.Next()
	list.Next()
	if list.Selected().ID != 3 {
		t.Errorf("selection after two Next = %d, want 3", list.Selected().ID)
	}

	// Selection stops at the last item; no wraparound past the sentinel.
	list.Next()
	if list.Selected().ID != 3 {
		t.Errorf("selection must not move past the end, got %d", list.Selected().ID)
	}

	list.Prev()
	if list.Selected().ID != 2 {
		t.Errorf("selection after Prev = %d, want 2", list.Selected().ID)
	}
}

func TestWorkListSetItemsClampsSelection(t *testing.T) {
	list := NewWorkList()
	list.SetItems(sampleWorks(5))
	list.SelectedIndex = 4

	list.SetItems(sampleWorks(2))
	if list.SelectedIndex != 1 {
		t.Errorf("selection should clamp to last item, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("empty list should reset selection, got %d", list.SelectedIndex)
	}
	if list.Selected() != nil {
		t.Error("Selected() on empty list must be nil")
	}
}

func TestWorkListNearEnd(t *testing.T) {
	list := NewWorkList()
	list.SetItems(sampleWorks(10))

	if list.NearEnd() {
		t.Error("selection at the top is not near the end")
	}
	list.SelectedIndex = 6
	if !list.NearEnd() {
		t.Error("selection within sentinel distance should report near end")
	}
}

func TestWorkListViewEmpty(t *testing.T) {
	list := NewWorkList()
	if !strings.Contains(list.View(), "Nenhuma obra") {
		t.Error("empty list should render placeholder")
	}
}

func TestWorkListViewShowsChapters(t *testing.T) {
	list := NewWorkList()
	list.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	list.SetItems([]data.WorkSummary{{
		ID:   1,
		Name: "Torre Azul",
		Chapters: []data.ChapterSummary{
			{ID: 11, Number: 12, CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		},
	}})

	view := list.View()
	if !strings.Contains(view, "Torre Azul") {
		t.Error("view missing work name")
	}
	if !strings.Contains(view, "Cap. 12") {
		t.Error("view missing chapter label")
	}
	if !strings.Contains(view, "2h") {
		t.Error("view missing relative time")
	}
}
