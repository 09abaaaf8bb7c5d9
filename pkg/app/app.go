package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tenrai/leitor/pkg/app/screens"
	"github.com/tenrai/leitor/pkg/services"
)

type App struct {
	reg *services.Registry
}

func NewApp(reg *services.Registry) *App {
	return &App{reg: reg}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.reg)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus())
	model.Bind(func(msg tea.Msg) { p.Send(msg) })
	_, err := p.Run()
	return err
}
