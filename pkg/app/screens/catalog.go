package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tenrai/leitor/pkg/app/components"
	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
	"github.com/tenrai/leitor/pkg/sources"
)

// CatalogScreen searches the whole catalog by name, tag and status.
// Typing is debounced; filter toggles refetch immediately.
type CatalogScreen struct {
	reg        *services.Registry
	controller *services.Controller[data.WorkSummary]
	list       *components.WorkList
	input      textinput.Model

	filters     *data.Filters
	tagIndex    int // 0 = all, otherwise filters.Tags[tagIndex-1]
	statusIndex int
	ascending   bool
	started     bool
}

type filtersLoadedMsg struct {
	filters *data.Filters
	err     error
}

func NewCatalogScreen(reg *services.Registry, wake func()) *CatalogScreen {
	controller := reg.NewWorksController()
	controller.SetOnChange(wake)

	ti := textinput.New()
	ti.Placeholder = "Buscar obras..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &CatalogScreen{
		reg:        reg,
		controller: controller,
		list:       components.NewWorkList(),
		input:      ti,
	}
}

func (s *CatalogScreen) InputFocused() bool {
	return s.input.Focused()
}

func (s *CatalogScreen) Init() tea.Cmd {
	if s.started {
		return textinput.Blink
	}
	s.started = true
	s.controller.Load(s.reg.SearchFetch(s.query()), s.cacheKey())
	return tea.Batch(textinput.Blink, func() tea.Msg {
		filters, err := s.reg.Source.Filters(context.Background())
		return filtersLoadedMsg{filters: filters, err: err}
	})
}

func (s *CatalogScreen) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.Width = msg.Width
		s.list.Height = msg.Height - 10

	case StateChangedMsg:
		s.list.SetItems(s.controller.Items())

	case filtersLoadedMsg:
		// Filters are optional chrome; a load failure just leaves the
		// toggles empty.
		if msg.err == nil {
			s.filters = msg.filters
		}

	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "esc":
				s.input.Blur()
				return nil
			case "enter":
				s.input.Blur()
				s.controller.Load(s.reg.SearchFetch(s.query()), s.cacheKey())
				return nil
			default:
				before := s.input.Value()
				s.input, cmd = s.input.Update(msg)
				if s.input.Value() != before {
					s.controller.LoadDebounced(s.reg.SearchFetch(s.query()), s.cacheKey())
				}
				return cmd
			}
		}

		switch msg.String() {
		case "/", "esc":
			s.input.Focus()
			return textinput.Blink
		case "down", "j":
			s.list.Next()
			if s.list.NearEnd() {
				s.controller.SentinelVisible()
			}
		case "up", "k":
			s.list.Prev()
		case "t":
			s.cycleTag()
		case "s":
			s.cycleStatus()
		case "o":
			s.ascending = !s.ascending
			s.reload()
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

	return cmd
}

func (s *CatalogScreen) cycleTag() {
	if s.filters == nil || len(s.filters.Tags) == 0 {
		return
	}
	s.tagIndex = (s.tagIndex + 1) % (len(s.filters.Tags) + 1)
	s.reload()
}

func (s *CatalogScreen) cycleStatus() {
	if s.filters == nil || len(s.filters.Statuses) == 0 {
		return
	}
	s.statusIndex = (s.statusIndex + 1) % (len(s.filters.Statuses) + 1)
	s.reload()
}

// reload refetches immediately; filter changes don't wait for the
// typing debounce.
func (s *CatalogScreen) reload() {
	s.controller.Load(s.reg.SearchFetch(s.query()), s.cacheKey())
}

func (s *CatalogScreen) query() sources.SearchQuery {
	q := sources.SearchQuery{
		Name:      strings.TrimSpace(s.input.Value()),
		Ascending: s.ascending,
	}
	if s.filters != nil {
		if s.tagIndex > 0 {
			q.TagIDs = []int{s.filters.Tags[s.tagIndex-1].ID}
		}
		if s.statusIndex > 0 {
			q.StatusIDs = []int{s.filters.Statuses[s.statusIndex-1].ID}
		}
	}
	return q
}

func (s *CatalogScreen) cacheKey() string {
	q := s.query()
	// Only the unfiltered front page is worth caching across visits.
	if q.Name == "" && len(q.TagIDs) == 0 && len(q.StatusIDs) == 0 && !q.Ascending {
		return "catalog"
	}
	return ""
}

func (s *CatalogScreen) View(width, height int) string {
	header := styles.TitleStyle.Render("Catálogo")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	filterBar := s.renderFilterBar()

	var body string
	switch {
	case s.controller.Err() != nil:
		body = styles.StatusError.Render(fmt.Sprintf("Erro: %s", s.controller.Err())) +
			"\n" + styles.MutedStyle.Render("r: tentar novamente")
	case s.controller.Loading():
		body = styles.StatusDownloading.Render("Buscando...")
	case len(s.controller.Items()) == 0:
		body = styles.MutedStyle.Render("Nenhum resultado")
	default:
		body = s.list.View()
		if s.controller.LoadingMore() {
			body += "\n" + styles.MutedStyle.Render("carregando mais...")
		}
	}

	help := styles.HelpStyle.Render(
		"/: buscar • t: gênero • s: status • o: ordem • enter: abrir • tab: trocar aba")
	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n%s", header, inputView, filterBar, body, help)
}

func (s *CatalogScreen) renderFilterBar() string {
	tag := "todos os gêneros"
	if s.filters != nil && s.tagIndex > 0 {
		tag = s.filters.Tags[s.tagIndex-1].Name
	}
	status := "todos os status"
	if s.filters != nil && s.statusIndex > 0 {
		status = s.filters.Statuses[s.statusIndex-1].Name
	}
	order := "recentes"
	if s.ascending {
		order = "antigos"
	}

	parts := []string{
		styles.ActiveTagStyle.Render(tag),
		styles.TagStyle.Render(status),
		styles.TagStyle.Render(order),
	}
	return strings.Join(parts, " ")
}
