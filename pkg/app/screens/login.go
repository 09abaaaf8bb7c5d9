package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/services"
)

// LoginScreen runs the OAuth hand-off: it prints the provider URL for
// the user to open in a browser and takes the refresh token pasted back.
type LoginScreen struct {
	reg   *services.Registry
	input textinput.Model

	busy bool
	err  error
}

type signedInMsg struct {
	err error
}

func NewLoginScreen(reg *services.Registry) *LoginScreen {
	ti := textinput.New()
	ti.Placeholder = "cole o token aqui"
	ti.CharLimit = 512
	ti.Width = 60
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &LoginScreen{reg: reg, input: ti}
}

func (s *LoginScreen) InputFocused() bool {
	return s.input.Focused()
}

func (s *LoginScreen) Init() tea.Cmd {
	s.busy = false
	s.err = nil
	s.input.SetValue("")
	s.input.Focus()
	return textinput.Blink
}

func (s *LoginScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case signedInMsg:
		s.busy = false
		s.err = msg.err
		if msg.err == nil {
			return func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		}
		s.input.Focus()
		return textinput.Blink

	case tea.KeyMsg:
		if s.busy {
			return nil
		}
		switch msg.String() {
		case "esc":
			if s.input.Focused() {
				s.input.Blur()
				return nil
			}
			return func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		case "enter":
			token := strings.TrimSpace(s.input.Value())
			if token == "" {
				return nil
			}
			s.busy = true
			s.err = nil
			s.input.Blur()
			return func() tea.Msg {
				_, err := s.reg.Backend.SignInWithRefreshToken(context.Background(), token)
				return signedInMsg{err: err}
			}
		default:
			if !s.input.Focused() {
				if msg.String() == "/" {
					s.input.Focus()
					return textinput.Blink
				}
				return nil
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
	}
	return nil
}

func (s *LoginScreen) View(width, height int) string {
	title := styles.TitleStyle.Render("Entrar")

	url := s.reg.Backend.OAuthURL("google", "leitor://auth")
	instructions := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextStyle.Render("1. Abra este endereço no navegador:"),
		styles.SubtitleStyle.Render("   "+url),
		styles.TextStyle.Render("2. Autorize o acesso e copie o refresh token."),
		styles.TextStyle.Render("3. Cole o token abaixo e pressione enter."))

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var status string
	switch {
	case s.busy:
		status = styles.StatusDownloading.Render("Entrando...")
	case s.err != nil:
		status = styles.StatusError.Render(fmt.Sprintf("Erro: %s", s.err))
	}

	help := styles.HelpStyle.Render("enter: entrar • esc: voltar")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title, instructions, "", inputView, status, help)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
