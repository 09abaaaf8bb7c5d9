package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/utils"
)

// sentinelDistance is how many items before the end count as "near the
// end" for triggering the next page.
const sentinelDistance = 4

// WorkList renders a scrollable column of work cards with their latest
// chapters.
type WorkList struct {
	Items         []data.WorkSummary
	SelectedIndex int
	Width         int
	Height        int

	now func() time.Time
}

func NewWorkList() *WorkList {
	return &WorkList{
		Width:  80,
		Height: 20,
		now:    time.Now,
	}
}

func (w *WorkList) SetItems(items []data.WorkSummary) {
	w.Items = items
	if w.SelectedIndex >= len(items) {
		w.SelectedIndex = len(items) - 1
	}
	if w.SelectedIndex < 0 {
		w.SelectedIndex = 0
	}
}

func (w *WorkList) Next() {
	if len(w.Items) == 0 {
		return
	}
	w.SelectedIndex++
	if w.SelectedIndex >= len(w.Items) {
		w.SelectedIndex = len(w.Items) - 1
	}
}

func (w *WorkList) Prev() {
	if len(w.Items) == 0 {
		return
	}
	w.SelectedIndex--
	if w.SelectedIndex < 0 {
		w.SelectedIndex = 0
	}
}

func (w *WorkList) Selected() *data.WorkSummary {
	if len(w.Items) == 0 || w.SelectedIndex >= len(w.Items) {
		return nil
	}
	return &w.Items[w.SelectedIndex]
}

// NearEnd reports that the selection scrolled close enough to the end
// to load more.
func (w *WorkList) NearEnd() bool {
	if len(w.Items) == 0 {
		return false
	}
	return w.SelectedIndex >= len(w.Items)-sentinelDistance
}

func (w *WorkList) View() string {
	if len(w.Items) == 0 {
		empty := styles.MutedStyle.Render("Nenhuma obra encontrada")
		return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center, empty)
	}

	var b strings.Builder
	start, end := w.window()
	for i := start; i < end; i++ {
		work := w.Items[i]
		cardStyle := styles.CardStyle
		if i == w.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(work.Name)

		var chapterLines []string
		for j, ch := range work.Chapters {
			if j >= 3 {
				break
			}
			when := utils.RelativeShort(ch.CreatedAt, w.now())
			chapterLines = append(chapterLines, fmt.Sprintf("%s  %s",
				styles.TextStyle.Render(ch.ShortName()),
				styles.MutedStyle.Render(when)))
		}

		parts := append([]string{title}, chapterLines...)
		card := cardStyle.Width(w.Width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, parts...))
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}

// window returns the visible slice bounds so the selection stays on
// screen.
func (w *WorkList) window() (int, int) {
	perCard := 6
	visible := w.Height / perCard
	if visible < 1 {
		visible = 1
	}
	start := 0
	if w.SelectedIndex >= visible {
		start = w.SelectedIndex - visible + 1
	}
	end := start + visible
	if end > len(w.Items) {
		end = len(w.Items)
	}
	return start, end
}
