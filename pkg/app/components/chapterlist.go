package components

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/utils"
)

// ChapterList renders a work's chapters, newest first by default, with
// already-read chapters dimmed.
type ChapterList struct {
	SelectedIndex int
	Height        int

	chapters  []data.ChapterSummary
	readSet   map[int]bool
	ascending bool
	now       func() time.Time
}

func NewChapterList() *ChapterList {
	return &ChapterList{
		Height:  20,
		readSet: map[int]bool{},
		now:     time.Now,
	}
}

func (c *ChapterList) SetChapters(chapters []data.ChapterSummary) {
	c.chapters = chapters
	c.SelectedIndex = 0
	c.sortChapters()
}

// SetReadSet marks which chapter ids render dimmed. Styling only; every
// chapter stays selectable.
func (c *ChapterList) SetReadSet(read map[int]bool) {
	if read == nil {
		read = map[int]bool{}
	}
	c.readSet = read
}

// ToggleOrder flips between newest-first and oldest-first, keeping the
// same chapter selected.
func (c *ChapterList) ToggleOrder() {
	selected := c.Selected()
	c.ascending = !c.ascending
	c.sortChapters()
	if selected != nil {
		for i, ch := range c.chapters {
			if ch.ID == selected.ID {
				c.SelectedIndex = i
				break
			}
		}
	}
}

func (c *ChapterList) Ascending() bool {
	return c.ascending
}

func (c *ChapterList) sortChapters() {
	sort.SliceStable(c.chapters, func(i, j int) bool {
		if c.ascending {
			return c.chapters[i].Number < c.chapters[j].Number
		}
		return c.chapters[i].Number > c.chapters[j].Number
	})
}

func (c *ChapterList) Next() {
	if c.SelectedIndex < len(c.chapters)-1 {
		c.SelectedIndex++
	}
}

func (c *ChapterList) Prev() {
	if c.SelectedIndex > 0 {
		c.SelectedIndex--
	}
}

func (c *ChapterList) Selected() *data.ChapterSummary {
	if len(c.chapters) == 0 || c.SelectedIndex >= len(c.chapters) {
		return nil
	}
	return &c.chapters[c.SelectedIndex]
}

func (c *ChapterList) Chapters() []data.ChapterSummary {
	return c.chapters
}

func (c *ChapterList) View() string {
	if len(c.chapters) == 0 {
		return styles.MutedStyle.Render("Nenhum capítulo disponível")
	}

	var b strings.Builder
	start, end := c.window()
	for i := start; i < end; i++ {
		ch := c.chapters[i]
		line := fmt.Sprintf("%s  %s", ch.DisplayName(), utils.RelativeLong(ch.CreatedAt, c.now()))

		style := styles.TextStyle
		if c.readSet[ch.ID] {
			style = styles.ReadStyle
		}
		if i == c.SelectedIndex {
			style = styles.SelectedStyle
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (c *ChapterList) window() (int, int) {
	visible := c.Height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if c.SelectedIndex >= visible {
		start = c.SelectedIndex - visible + 1
	}
	end := start + visible
	if end > len(c.chapters) {
		end = len(c.chapters)
	}
	return start, end
}
