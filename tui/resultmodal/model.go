// Package resultmodal records the contratação outcome for a job in the
// final stage: positivo closes the posting, negativo sends it back to
// entrevistas on the server.
package resultmodal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/tui/shared"
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionCancel
	ActionSubmit
)

type KeyResult struct {
	Action ActionKind
	Result string // "positivo" or "negativo"
	Notes  string
}

var results = []string{"positivo", "negativo"}

type Model struct {
	jobID    string
	jobTitle string
	choice   int
	notes    textinput.Model
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "observações (opcional)..."
	ti.CharLimit = 300
	return Model{notes: ti}
}

func (m *Model) Open(jobID, jobTitle string) {
	m.jobID = jobID
	m.jobTitle = jobTitle
	m.choice = 0
	m.notes.SetValue("")
	m.notes.Focus()
}

func (m Model) JobID() string { return m.jobID }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) HandleKey(msg tea.KeyMsg) KeyResult {
	switch msg.String() {
	case "esc":
		return KeyResult{Action: ActionCancel}
	case "tab", "left", "right":
		m.choice = (m.choice + 1) % len(results)
	case "enter":
		return KeyResult{
			Action: ActionSubmit,
			Result: results[m.choice],
			Notes:  strings.TrimSpace(m.notes.Value()),
		}
	}
	return KeyResult{Action: ActionNone}
}

func (m Model) ViewOverlay(w, h int) string {
	var b strings.Builder
	b.WriteString(shared.ModalTitleStyle.Render("Resultado da contratação"))
	b.WriteString("\n\n")
	b.WriteString(shared.CardMetaStyle.Render(m.jobTitle))
	b.WriteString("\n\n")

	for i, r := range results {
		label := " " + r + " "
		if i == m.choice {
			if r == "positivo" {
				b.WriteString(shared.FeedbackSuccessStyle.Render("[" + r + "]"))
			} else {
				b.WriteString(shared.FeedbackErrorStyle.Render("[" + r + "]"))
			}
		} else {
			b.WriteString(shared.HelpDescStyle.Render(label))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
	b.WriteString(m.notes.View())
	b.WriteString("\n\n")
	b.WriteString(shared.HelpDescStyle.Render("tab: alternar  enter: confirmar  esc: cancelar"))

	overlay := shared.ModalOverlayStyle.Render(b.String())
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
