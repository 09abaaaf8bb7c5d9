package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tenrai/leitor/pkg/app/components"
	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
	"github.com/tenrai/leitor/pkg/utils"
)

// DetailsScreen shows one work: description, tags and the chapter list.
type DetailsScreen struct {
	reg     *services.Registry
	summary data.WorkSummary

	work     *data.Work
	list     *components.ChapterList
	progress *components.ProgressTracker
	loading  bool
	err      error
	width    int
	height   int
}

type workLoadedMsg struct {
	work *data.Work
	read map[int]bool
	err  error
}

type chapterDownloadedMsg struct {
	path string
	err  error
}

func NewDetailsScreen(reg *services.Registry, summary data.WorkSummary) *DetailsScreen {
	return &DetailsScreen{
		reg:      reg,
		summary:  summary,
		list:     components.NewChapterList(),
		progress: components.NewProgressTracker(60),
		loading:  true,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.load
}

// Refresh re-reads the read set when coming back from the reader, so
// the chapter just read renders dimmed.
func (s *DetailsScreen) Refresh() tea.Cmd {
	return s.load
}

func (s *DetailsScreen) load() tea.Msg {
	ctx := context.Background()
	work, err := s.reg.Source.Work(ctx, utils.Slugify(s.summary.Name))
	if err != nil {
		return workLoadedMsg{err: err}
	}
	read, err := s.reg.History.ReadSet(ctx, []int{work.ID})
	if err != nil {
		// Read markers are advisory; the chapter list works without them.
		read = map[int]bool{}
	}
	return workLoadedMsg{work: work, read: read}
}

func (s *DetailsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Height = msg.Height - 14

	case workLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.work != nil {
			s.work = msg.work
			s.list.SetChapters(msg.work.Chapters)
			s.list.SetReadSet(msg.read)
			s.reg.Reader.SeedReadSet(msg.read)
		}

	case services.DownloadProgress:
		s.progress.Update(msg)
		return s.listenProgress()

	case chapterDownloadedMsg:
		if msg.err != nil {
			s.err = msg.err
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j":
			s.list.Next()
		case "up", "k":
			s.list.Prev()
		case "a":
			s.list.ToggleOrder()
		case "r":
			s.loading = true
			s.err = nil
			return s.load
		case "b":
			if s.work != nil {
				work := s.work.Summary()
				return func() tea.Msg {
					s.reg.Library.Toggle(context.Background(), work)
					return StateChangedMsg{}
				}
			}
		case "d":
			if ch := s.list.Selected(); ch != nil && s.work != nil {
				return tea.Batch(s.download(*ch), s.listenProgress())
			}
		case "enter":
			if ch := s.list.Selected(); ch != nil {
				id := ch.ID
				return func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: id}
				}
			}
		case "esc", "backspace":
			return func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		}
	}
	return nil
}

func (s *DetailsScreen) download(ch data.ChapterSummary) tea.Cmd {
	work := s.work.Summary()
	return func() tea.Msg {
		path, err := s.reg.Downloader.DownloadChapter(context.Background(), work, ch)
		return chapterDownloadedMsg{path: path, err: err}
	}
}

func (s *DetailsScreen) listenProgress() tea.Cmd {
	return func() tea.Msg {
		if p, ok := <-s.reg.Downloader.Progress(); ok {
			return p
		}
		return nil
	}
}

func (s *DetailsScreen) View(width, height int) string {
	if s.loading {
		return styles.StatusDownloading.Render("Carregando...")
	}
	if s.err != nil {
		return styles.StatusError.Render(fmt.Sprintf("Erro: %s", s.err)) +
			"\n" + styles.MutedStyle.Render("r: tentar novamente • esc: voltar")
	}
	if s.work == nil {
		return ""
	}

	header := styles.TitleStyle.Render(s.work.Name)

	var meta []string
	if s.work.Status != "" {
		meta = append(meta, styles.TagStyle.Render(s.work.Status))
	}
	for _, tag := range s.work.Tags {
		meta = append(meta, styles.TagStyle.Render(tag.Name))
	}
	metaLine := strings.Join(meta, " ")

	desc := utils.Truncate(s.work.Description, 300)

	inLibrary := "b: adicionar à biblioteca"
	if s.reg.Library.Contains(s.work.ID) {
		inLibrary = "b: remover da biblioteca"
	}

	order := "mais recentes primeiro"
	if s.list.Ascending() {
		order = "mais antigos primeiro"
	}

	help := styles.HelpStyle.Render(fmt.Sprintf(
		"enter: ler • a: ordem (%s) • %s • d: baixar • esc: voltar", order, inLibrary))

	parts := []string{
		header,
		metaLine,
		styles.TextStyle.Render(desc),
		"",
		s.list.View(),
	}
	if s.progress.HasActive() {
		parts = append(parts, s.progress.View())
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
