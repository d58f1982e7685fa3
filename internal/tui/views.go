package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) boxWidth() int {
	if a.width <= 0 {
		return 70
	}
	return max(20, min(70, a.width-4))
}

func (a *App) center(s string) string {
	if a.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

func (a *App) renderMenu() string {
	var b strings.Builder
	b.WriteString(a.center(styleTitle.Render("Gemini Assistant")))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render("Choose a task")))
	b.WriteString("\n\n")

	var lines []string
	for i, m := range modes {
		line := fmt.Sprintf("  %-24s %s", m.name, styleSubtitle.Render(m.desc))
		if i == a.selected {
			line = styleSelected.Render("> "+m.name) + strings.Repeat(" ", max(1, 23-len(m.name))) + styleSubtitle.Render(m.desc)
		}
		lines = append(lines, line)
	}
	b.WriteString(a.center(styleBox.Width(a.boxWidth()).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")
	b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Select  [Enter] Open  [Esc] Quit")))
	return b.String()
}

func (a *App) renderForm() string {
	m := modes[a.selected]

	var b strings.Builder
	b.WriteString(a.center(styleTitle.Render(m.name)))
	b.WriteString("\n\n")

	var lines []string
	for i, spec := range m.fields {
		label := styleLabel.Render(spec.label)
		if i == a.focus {
			label = styleSelected.Width(22).Render(spec.label)
		}
		lines = append(lines, label+a.inputs[i].View())
	}
	b.WriteString(a.center(styleBox.Width(a.boxWidth()).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")
	b.WriteString(a.center(styleStatusBar.Render("[Tab] Next  [Enter] Next/Submit  [Esc] Back")))
	return b.String()
}

func (a *App) renderProcessing() string {
	msg := fmt.Sprintf("%s Working on %s...", a.spinner.View(), modes[a.selected].name)
	return a.center(styleSubtitle.Render(msg))
}

func (a *App) renderResult() string {
	var b strings.Builder
	b.WriteString(a.center(styleTitle.Render(a.result.title)))
	b.WriteString("\n\n")

	body := a.result.text
	border := colorPrimary
	switch {
	case a.result.err != nil:
		body = styleError.Render("Error: " + a.result.err.Error())
		border = colorError
	case body == "":
		body = styleSubtitle.Render("(no content)")
	}
	b.WriteString(a.center(styleBox.Width(a.boxWidth()).BorderForeground(border).Render(body)))
	b.WriteString("\n")

	if a.result.notice != "" {
		b.WriteString("\n")
		b.WriteString(a.center(styleNotice.Render("! " + a.result.notice)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.center(styleStatusBar.Render("[Enter/Esc] Back to menu  [Ctrl+C] Quit")))
	return b.String()
}
