package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
)

// ReaderScreen is the full-screen chapter view. A terminal can't show
// the page images, so it renders the page position and the resolved
// image URL, with the same navigation the reader owes: pages, sibling
// chapters and the jump list.
type ReaderScreen struct {
	reg *services.Registry

	jumpOpen     bool
	jumpIndex    int
	showTutorial bool
}

func NewReaderScreen(reg *services.Registry) *ReaderScreen {
	return &ReaderScreen{reg: reg}
}

// Open starts loading the chapter and decides whether the one-time
// tutorial overlay shows.
func (s *ReaderScreen) Open(chapterID int) tea.Cmd {
	s.jumpOpen = false
	s.jumpIndex = 0
	s.showTutorial = !s.reg.Local.TutorialSeen()
	s.reg.Reader.Load(chapterID)
	return nil
}

func (s *ReaderScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if s.showTutorial {
		// Any key dismisses the tutorial, permanently.
		s.showTutorial = false
		s.reg.Local.MarkTutorialSeen()
		return nil
	}

	if s.jumpOpen {
		return s.updateJump(key)
	}

	reader := s.reg.Reader
	switch key.String() {
	case "right", "l", " ":
		reader.SetPage(reader.Page() + 1)
	case "left", "h":
		reader.SetPage(reader.Page() - 1)
	case "n":
		reader.Next()
	case "p":
		reader.Prev()
	case "g":
		if reader.State() == services.StateReady {
			s.jumpOpen = true
			s.jumpIndex = 0
		}
	case "r":
		if reader.State() == services.StateError {
			if ch := reader.Chapter(); ch != nil {
				reader.Load(ch.ID)
			}
		}
	case "esc", "backspace", "q":
		return func() tea.Msg {
			return SwitchScreenMsg{Screen: "back"}
		}
	}
	return nil
}

func (s *ReaderScreen) updateJump(key tea.KeyMsg) tea.Cmd {
	list := s.reg.Reader.JumpList()
	switch key.String() {
	case "down", "j":
		if s.jumpIndex < len(list)-1 {
			s.jumpIndex++
		}
	case "up", "k":
		if s.jumpIndex > 0 {
			s.jumpIndex--
		}
	case "enter":
		if s.jumpIndex < len(list) {
			s.reg.Reader.Jump(list[s.jumpIndex].ID)
		}
		s.jumpOpen = false
	case "esc", "g":
		s.jumpOpen = false
	}
	return nil
}

func (s *ReaderScreen) View(width, height int) string {
	reader := s.reg.Reader

	switch reader.State() {
	case services.StateLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.StatusDownloading.Render("Carregando capítulo..."))
	case services.StateError:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.StatusError.Render(fmt.Sprintf("Erro: %s", reader.Err()))+
				"\n"+styles.MutedStyle.Render("r: tentar novamente • esc: voltar"))
	}

	chapter := reader.Chapter()
	if chapter == nil {
		return ""
	}

	if s.showTutorial {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.OverlayStyle.Render(tutorialText()))
	}
	if s.jumpOpen {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.OverlayStyle.Render(s.renderJump()))
	}

	title := styles.TitleStyle.Render(fmt.Sprintf("%s — %s",
		chapter.Work.Name,
		data.ChapterSummary{ID: chapter.ID, Number: chapter.Number, Name: chapter.Name}.DisplayName()))

	page := reader.Page()
	total := len(chapter.Pages)
	position := styles.SubtitleStyle.Render(fmt.Sprintf("Página %d de %d", page+1, total))

	var imageURL string
	if page < total {
		imageURL = styles.MutedStyle.Render(s.reg.Resolver.PageImage(chapter.Pages[page].Path))
	}

	var siblings []string
	if chapter.Prev != nil {
		siblings = append(siblings, "p: "+chapter.Prev.DisplayName())
	}
	if chapter.Next != nil {
		siblings = append(siblings, "n: "+chapter.Next.DisplayName())
	}

	help := styles.HelpStyle.Render(
		"←/h →/l: páginas • g: capítulos • esc: voltar")

	parts := []string{title, position, imageURL}
	if len(siblings) > 0 {
		parts = append(parts, styles.MutedStyle.Render(strings.Join(siblings, " • ")))
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ReaderScreen) renderJump() string {
	list := s.reg.Reader.JumpList()
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Capítulos"))
	b.WriteString("\n")

	start := 0
	visible := 12
	if s.jumpIndex >= visible {
		start = s.jumpIndex - visible + 1
	}
	end := start + visible
	if end > len(list) {
		end = len(list)
	}
	for i := start; i < end; i++ {
		ch := list[i]
		line := "  " + ch.DisplayName()
		style := styles.TextStyle
		if s.reg.Reader.WasRead(ch.ID) {
			style = styles.ReadStyle
		}
		if i == s.jumpIndex {
			style = styles.SelectedStyle
			line = "> " + ch.DisplayName()
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("enter: ir • esc: fechar"))
	return b.String()
}

func tutorialText() string {
	return strings.Join([]string{
		styles.TitleStyle.Render("Como ler"),
		"←/→ ou h/l trocam de página",
		"n/p trocam de capítulo",
		"g abre a lista de capítulos",
		"",
		styles.MutedStyle.Render("pressione qualquer tecla para começar"),
	}, "\n")
}
