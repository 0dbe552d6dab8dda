// Package historymodal shows the stage history of one card, newest first,
// as returned by the backend.
package historymodal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/api"
	"github.com/rafael/talentboard/pipeline"
	"github.com/rafael/talentboard/tui/shared"
)

type Model struct {
	cardName string
	entries  []api.HistoryEntry
	scroll   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetEntries(cardName string, entries []api.HistoryEntry) {
	m.cardName = cardName
	m.entries = entries
	m.scroll = 0
}

// HandleKey scrolls; returns true when the modal should close.
func (m *Model) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "esc", "q", "enter", "H":
		return true
	case "j", "down":
		if m.scroll < len(m.entries)-1 {
			m.scroll++
		}
	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
	}
	return false
}

const visibleEntries = 10

func (m Model) ViewOverlay(w, h int) string {
	var b strings.Builder
	b.WriteString(shared.ModalTitleStyle.Render("Histórico de fases"))
	b.WriteString(" ")
	b.WriteString(shared.CardMetaStyle.Render(m.cardName))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(shared.EmptyColumnStyle.Render("nenhuma mudança registrada"))
		b.WriteString("\n")
	}

	end := m.scroll + visibleEntries
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for _, e := range m.entries[m.scroll:end] {
		from := pipeline.Stage(e.From).Label()
		to := pipeline.Stage(e.To).Label()
		b.WriteString(fmt.Sprintf("%s → %s",
			shared.StageAccent(e.From).Render(from),
			shared.StageAccent(e.To).Render(to)))
		b.WriteString("\n")
		meta := e.ChangedAt
		if e.ChangedBy != "" {
			meta += " · " + e.ChangedBy
		}
		b.WriteString(shared.CardMetaStyle.Render(meta))
		b.WriteString("\n")
		if e.Note != "" {
			b.WriteString(shared.CardNoteStyle.Render("  " + e.Note))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if end < len(m.entries) {
		b.WriteString(shared.CardMetaStyle.Render(fmt.Sprintf("+%d more", len(m.entries)-end)))
		b.WriteString("\n")
	}
	b.WriteString(shared.HelpDescStyle.Render("j/k: rolar  esc: fechar"))

	overlay := shared.ModalOverlayStyle.Render(b.String())
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
