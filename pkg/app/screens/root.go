package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
)

type screenType int

const (
	updatesView screenType = iota
	catalogView
	profileView
	detailsView
	readerView
	loginView
)

// RootScreen owns the tab bar and routes messages to the active view.
// The reader and login views take the whole screen, without tabs.
type RootScreen struct {
	reg    *services.Registry
	notify func(tea.Msg)

	currentView screenType
	previousTab screenType
	updates     *UpdatesScreen
	catalog     *CatalogScreen
	profile     *ProfileScreen
	details     *DetailsScreen
	reader      *ReaderScreen
	login       *LoginScreen

	width  int
	height int
}

func NewRootScreen(reg *services.Registry) *RootScreen {
	return &RootScreen{
		reg:         reg,
		currentView: updatesView,
	}
}

// Bind wires the service change hooks to the program's message queue.
// Must be called before the program runs.
func (r *RootScreen) Bind(send func(tea.Msg)) {
	r.notify = send
	wake := func() { send(StateChangedMsg{}) }
	r.reg.Notices.SetOnChange(wake)
	r.reg.Sessions.SetOnChange(wake)
	r.reg.Reader.SetOnChange(wake)
	r.reg.Library.SetOnChange(wake)

	r.updates = NewUpdatesScreen(r.reg, wake)
	r.catalog = NewCatalogScreen(r.reg, wake)
	r.profile = NewProfileScreen(r.reg)
	r.reader = NewReaderScreen(r.reg)
	r.login = NewLoginScreen(r.reg)
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			r.reg.Sessions.Init(context.Background())
			r.reg.Library.Refresh(context.Background())
			return StateChangedMsg{}
		},
		r.updates.Init(),
	)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.FocusMsg:
		// Regaining focus revalidates the session in the background.
		return r, func() tea.Msg {
			r.reg.Sessions.Revalidate(context.Background())
			r.reg.Library.Refresh(context.Background())
			return StateChangedMsg{}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.typing() && r.currentView != readerView {
				return r, tea.Quit
			}
		case "tab":
			if r.tabVisible() {
				r.currentView = r.nextTab()
				return r, r.activeTabInit()
			}
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "updates":
			r.currentView = updatesView
			cmd = r.updates.Init()
		case "catalog":
			r.currentView = catalogView
			cmd = r.catalog.Init()
		case "profile":
			r.currentView = profileView
			cmd = r.profile.Init()
		case "details":
			if work, ok := msg.Data.(data.WorkSummary); ok {
				r.rememberTab()
				r.details = NewDetailsScreen(r.reg, work)
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		case "reader":
			if chapterID, ok := msg.Data.(int); ok {
				r.rememberTab()
				r.currentView = readerView
				cmd = r.reader.Open(chapterID)
			}
		case "login":
			r.rememberTab()
			r.currentView = loginView
			cmd = r.login.Init()
		case "back":
			if r.currentView == readerView && r.details != nil {
				r.currentView = detailsView
				cmd = r.details.Refresh()
			} else {
				r.currentView = r.previousTab
				cmd = r.activeTabInit()
			}
		}
		return r, cmd
	}

	// Forward everything else to the active view.
	switch r.currentView {
	case updatesView:
		return r, r.updates.Update(msg)
	case catalogView:
		return r, r.catalog.Update(msg)
	case profileView:
		return r, r.profile.Update(msg)
	case detailsView:
		if r.details != nil {
			return r, r.details.Update(msg)
		}
	case readerView:
		return r, r.reader.Update(msg)
	case loginView:
		return r, r.login.Update(msg)
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case updatesView:
		content = r.updates.View(r.width, r.height-4)
	case catalogView:
		content = r.catalog.View(r.width, r.height-4)
	case profileView:
		content = r.profile.View(r.width, r.height-4)
	case detailsView:
		if r.details != nil {
			content = r.details.View(r.width, r.height-2)
		}
	case readerView:
		content = r.reader.View(r.width, r.height-2)
	case loginView:
		content = r.login.View(r.width, r.height-2)
	}

	parts := []string{}
	if r.tabVisible() {
		parts = append(parts, r.renderTabs(), "")
	}
	parts = append(parts, content)
	if notice := r.reg.Notices.Current(); notice != "" {
		parts = append(parts, styles.NoticeStyle.Render(notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// typing reports whether the active view has a focused text input, so
// plain letters must not trigger global shortcuts.
func (r *RootScreen) typing() bool {
	switch r.currentView {
	case catalogView:
		return r.catalog.InputFocused()
	case loginView:
		return r.login.InputFocused()
	}
	return false
}

func (r *RootScreen) tabVisible() bool {
	switch r.currentView {
	case updatesView, catalogView, profileView:
		return true
	}
	return false
}

func (r *RootScreen) nextTab() screenType {
	switch r.currentView {
	case updatesView:
		return catalogView
	case catalogView:
		return profileView
	default:
		return updatesView
	}
}

func (r *RootScreen) rememberTab() {
	if r.tabVisible() {
		r.previousTab = r.currentView
	}
}

func (r *RootScreen) activeTabInit() tea.Cmd {
	switch r.currentView {
	case updatesView:
		return r.updates.Init()
	case catalogView:
		return r.catalog.Init()
	case profileView:
		return r.profile.Init()
	}
	return nil
}

func (r *RootScreen) renderTabs() string {
	labels := []string{"Lançamentos", "Catálogo", "Perfil"}
	views := []screenType{updatesView, catalogView, profileView}

	rendered := make([]string, len(labels))
	for i, label := range labels {
		if views[i] == r.currentView {
			rendered[i] = styles.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = styles.InactiveTabStyle.Render(label)
		}
	}
	user := r.reg.Sessions.User()
	who := styles.MutedStyle.Render("visitante")
	if r.reg.Sessions.Loading() {
		who = styles.MutedStyle.Render("...")
	} else if user != nil {
		who = styles.SubtitleStyle.Render(user.DisplayName())
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return fmt.Sprintf("%s  %s", tabs, who)
}
