package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
	"github.com/tenrai/leitor/pkg/utils"
)

type profileTab int

const (
	libraryTab profileTab = iota
	historyTab
)

// ProfileScreen shows the signed-in user with their library and reading
// history; signed out it offers the login flow.
type ProfileScreen struct {
	reg *services.Registry

	tab      profileTab
	library  []data.LibraryEntry
	history  []data.HistoryEntry
	profile  *data.Profile
	selected int
	loading  bool
	err      error
}

type collectionsLoadedMsg struct {
	library []data.LibraryEntry
	history []data.HistoryEntry
	profile *data.Profile
	err     error
}

func NewProfileScreen(reg *services.Registry) *ProfileScreen {
	return &ProfileScreen{reg: reg}
}

func (s *ProfileScreen) Init() tea.Cmd {
	if s.reg.Sessions.User() == nil {
		return nil
	}
	s.loading = true
	return s.loadCollections
}

func (s *ProfileScreen) loadCollections() tea.Msg {
	ctx := context.Background()
	library, err := s.reg.Library.Entries(ctx)
	if err != nil {
		return collectionsLoadedMsg{err: err}
	}
	history, err := s.reg.History.List(ctx)
	if err != nil {
		return collectionsLoadedMsg{err: err}
	}
	// The profile row is optional chrome; ignore a failed read.
	profile, _ := s.reg.Profiles.Get(ctx)
	return collectionsLoadedMsg{library: library, history: history, profile: profile}
}

func (s *ProfileScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case collectionsLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.library = msg.library
			s.history = msg.history
			s.profile = msg.profile
		}

	case tea.KeyMsg:
		if s.reg.Sessions.User() == nil {
			if msg.String() == "l" {
				return func() tea.Msg {
					return SwitchScreenMsg{Screen: "login"}
				}
			}
			return nil
		}

		switch msg.String() {
		case "left", "right", "h":
			if s.tab == libraryTab {
				s.tab = historyTab
			} else {
				s.tab = libraryTab
			}
			s.selected = 0
		case "down", "j":
			if s.selected < s.tabLen()-1 {
				s.selected++
			}
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "r":
			s.loading = true
			return s.loadCollections
		case "enter":
			if work, ok := s.selectedWork(); ok {
				return func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: work}
				}
			}
		case "o":
			return func() tea.Msg {
				s.reg.Backend.SignOut()
				return StateChangedMsg{}
			}
		}
	}
	return nil
}

func (s *ProfileScreen) tabLen() int {
	if s.tab == libraryTab {
		return len(s.library)
	}
	return len(s.history)
}

func (s *ProfileScreen) selectedWork() (data.WorkSummary, bool) {
	if s.tab == libraryTab {
		if s.selected < len(s.library) {
			e := s.library[s.selected]
			return data.WorkSummary{ID: e.WorkID, Name: e.WorkName, Image: e.WorkImage}, true
		}
	} else if s.selected < len(s.history) {
		e := s.history[s.selected]
		return data.WorkSummary{ID: e.WorkID, Name: e.WorkName, Image: e.WorkImage}, true
	}
	return data.WorkSummary{}, false
}

func (s *ProfileScreen) View(width, height int) string {
	if s.reg.Sessions.Loading() {
		return styles.StatusDownloading.Render("Carregando sessão...")
	}
	user := s.reg.Sessions.User()
	if user == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Perfil"),
			styles.TextStyle.Render("Você não está logado."),
			"",
			styles.HelpStyle.Render("l: entrar"))
	}

	header := styles.TitleStyle.Render(user.DisplayName())
	if s.profile != nil && s.profile.AvatarURL != "" {
		header += "\n" + styles.MutedStyle.Render(s.profile.AvatarURL)
	}

	tabs := s.renderTabs()

	var body string
	switch {
	case s.err != nil:
		body = styles.StatusError.Render(fmt.Sprintf("Erro: %s", s.err)) +
			"\n" + styles.MutedStyle.Render("r: tentar novamente")
	case s.loading:
		body = styles.StatusDownloading.Render("Carregando...")
	case s.tab == libraryTab:
		body = s.renderLibrary()
	default:
		body = s.renderHistory()
	}

	help := styles.HelpStyle.Render(
		"←/→: biblioteca/histórico • enter: abrir • o: sair da conta")
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", body, help)
}

func (s *ProfileScreen) renderTabs() string {
	library := "Biblioteca"
	history := "Histórico"
	if s.tab == libraryTab {
		library = styles.ActiveTabStyle.Render(library)
		history = styles.InactiveTabStyle.Render(history)
	} else {
		library = styles.InactiveTabStyle.Render(library)
		history = styles.ActiveTabStyle.Render(history)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, library, history)
}

func (s *ProfileScreen) renderLibrary() string {
	if len(s.library) == 0 {
		return styles.MutedStyle.Render("Sua biblioteca está vazia")
	}
	var b strings.Builder
	for i, e := range s.library {
		line := fmt.Sprintf("%s  %s", e.WorkName,
			utils.RelativeLong(e.AddedAt, time.Now()))
		b.WriteString(s.renderLine(line, i))
	}
	return b.String()
}

func (s *ProfileScreen) renderHistory() string {
	if len(s.history) == 0 {
		return styles.MutedStyle.Render("Nenhuma leitura registrada")
	}
	var b strings.Builder
	for i, e := range s.history {
		line := fmt.Sprintf("%s — %s  %s", e.WorkName, e.ChapterName,
			utils.RelativeLong(e.ReadAt, time.Now()))
		b.WriteString(s.renderLine(line, i))
	}
	return b.String()
}

func (s *ProfileScreen) renderLine(line string, i int) string {
	style := styles.TextStyle
	prefix := "  "
	if i == s.selected {
		style = styles.SelectedStyle
		prefix = "> "
	}
	return style.Render(prefix+line) + "\n"
}
