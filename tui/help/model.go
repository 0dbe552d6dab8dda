// Package help renders the full keymap as a centered overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/tui/shared"
)

var groupNames = []string{"Navigation", "Drag & Drop", "Stage Actions", "Board", "General"}

type Model struct {
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(shared.BoardTitleStyle.Render("Talentboard"))
	b.WriteString(shared.BoardClientStyle.Render("  atalhos do teclado"))
	b.WriteString("\n\n")

	for i, group := range shared.Keys.FullHelp() {
		if i < len(groupNames) {
			b.WriteString(shared.ColumnTitleStyle.Render(groupNames[i]))
			b.WriteString("\n")
		}
		for _, k := range group {
			h := k.Help()
			b.WriteString("  ")
			b.WriteString(shared.HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)))
			b.WriteString(shared.HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(shared.HelpDescStyle.Render("? fecha esta tela"))

	content := shared.HelpOverlayStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
