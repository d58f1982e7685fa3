// Package tui is the interactive terminal shell over the assistant's task modes.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewMenu view = iota
	viewForm
	viewProcessing
	viewResult
)

// App is the bubbletea model. One action runs at a time; input is ignored
// while it is processing.
type App struct {
	width    int
	height   int
	view     view
	svc      Assistant
	quitting bool

	selected int
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	result   resultMsg
}

// NewApp creates the shell over svc
func NewApp(svc Assistant) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSelected
	return &App{svc: svc, view: viewMenu, spinner: sp}
}

// Run starts the shell on the terminal and blocks until it exits
func Run(svc Assistant) error {
	_, err := tea.NewProgram(NewApp(svc), tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.WindowSize()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case resultMsg:
		a.result = msg
		a.view = viewResult
		return a, nil

	case spinner.TickMsg:
		if a.view != viewProcessing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			a.quitting = true
			return a, tea.Quit
		}
		switch a.view {
		case viewMenu:
			return a, a.handleMenuKey(msg)
		case viewForm:
			return a, a.handleFormKey(msg)
		case viewResult:
			if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
				a.view = viewMenu
			}
			return a, nil
		}
	}

	return a, nil
}

func (a *App) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, keys.Up):
		if a.selected > 0 {
			a.selected--
		}
	case key.Matches(msg, keys.Down):
		if a.selected < len(modes)-1 {
			a.selected++
		}
	case key.Matches(msg, keys.Enter):
		a.inputs = newInputs(modes[a.selected].fields)
		a.focus = 0
		a.view = viewForm
		return textinput.Blink
	}
	return nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewMenu
		return nil
	case key.Matches(msg, keys.Next):
		a.setFocus((a.focus + 1) % len(a.inputs))
		return nil
	case key.Matches(msg, keys.Prev):
		a.setFocus((a.focus - 1 + len(a.inputs)) % len(a.inputs))
		return nil
	case key.Matches(msg, keys.Enter):
		if a.focus < len(a.inputs)-1 {
			a.setFocus(a.focus + 1)
			return nil
		}
		return a.submit()
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return cmd
}

func (a *App) setFocus(i int) {
	a.inputs[a.focus].Blur()
	a.focus = i
	a.inputs[a.focus].Focus()
}

// values collects the trimmed form inputs by field key
func (a *App) values() map[string]string {
	m := modes[a.selected]
	out := make(map[string]string, len(m.fields))
	for i, spec := range m.fields {
		out[spec.key] = strings.TrimSpace(a.inputs[i].Value())
	}
	return out
}

func (a *App) submit() tea.Cmd {
	a.view = viewProcessing
	return tea.Batch(a.spinner.Tick, actionCmd(a.svc, modes[a.selected], a.values()))
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewForm:
		return a.renderForm()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	default:
		return a.renderMenu()
	}
}
