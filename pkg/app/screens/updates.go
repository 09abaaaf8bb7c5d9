package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tenrai/leitor/pkg/app/components"
	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
	"github.com/tenrai/leitor/pkg/utils"
)

// UpdatesScreen is the home listing: latest chapter releases, scrolling
// endlessly through the catalog, with the featured strip on top.
type UpdatesScreen struct {
	reg        *services.Registry
	controller *services.Controller[data.WorkSummary]
	list       *components.WorkList
	featured   []data.WorkSummary
	started    bool
}

type featuredLoadedMsg struct {
	works []data.WorkSummary
	err   error
}

func NewUpdatesScreen(reg *services.Registry, wake func()) *UpdatesScreen {
	controller := reg.NewWorksController()
	controller.SetOnChange(wake)
	return &UpdatesScreen{
		reg:        reg,
		controller: controller,
		list:       components.NewWorkList(),
	}
}

func (s *UpdatesScreen) Init() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true
	s.controller.Load(s.reg.UpdatesFetch(), "updates")
	return func() tea.Msg {
		works, err := s.reg.Featured(context.Background())
		return featuredLoadedMsg{works: works, err: err}
	}
}

func (s *UpdatesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.Width = msg.Width
		s.list.Height = msg.Height - 6

	case StateChangedMsg:
		s.list.SetItems(s.controller.Items())

	case featuredLoadedMsg:
		// The featured strip is decoration; a failed fetch just hides it.
		if msg.err == nil {
			s.featured = msg.works
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j":
			s.list.Next()
			if s.list.NearEnd() {
				s.controller.SentinelVisible()
			}
		case "up", "k":
			s.list.Prev()
		case "r":
			if s.controller.Err() != nil {
				s.controller.Retry()
			}
		case "enter":
			if work := s.list.Selected(); work != nil {
				selected := *work
				return func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: selected}
				}
			}
		}
	}
	return nil
}

func (s *UpdatesScreen) View(width, height int) string {
	header := styles.TitleStyle.Render("Lançamentos")

	var body string
	switch {
	case s.controller.Err() != nil:
		body = styles.StatusError.Render(fmt.Sprintf("Erro: %s", s.controller.Err())) +
			"\n" + styles.MutedStyle.Render("r: tentar novamente")
	case s.controller.Loading():
		body = styles.StatusDownloading.Render("Carregando...")
	default:
		body = s.list.View()
		if s.controller.LoadingMore() {
			body += "\n" + styles.MutedStyle.Render("carregando mais...")
		} else if !s.controller.HasMore() {
			body += "\n" + styles.MutedStyle.Render("fim da lista")
		}
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navegar • enter: abrir obra • tab: trocar aba • q: sair")
	if strip := s.renderFeatured(width); strip != "" {
		return fmt.Sprintf("%s\n%s\n%s\n%s", header, strip, body, help)
	}
	return fmt.Sprintf("%s\n%s\n%s", header, body, help)
}

func (s *UpdatesScreen) renderFeatured(width int) string {
	if len(s.featured) == 0 {
		return ""
	}
	names := make([]string, 0, len(s.featured))
	for _, w := range s.featured {
		names = append(names, w.Name)
	}
	strip := "Em alta: " + strings.Join(names, " • ")
	if width > 10 {
		strip = utils.Truncate(strip, width)
	}
	return styles.SubtitleStyle.Render(strip)
}
