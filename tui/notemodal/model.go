// Package notemodal prompts for the mandatory rejection note. Nothing is
// mutated or sent until the note is confirmed; cancelling aborts the whole
// transition.
package notemodal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/pipeline"
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
	Note   string
}

type Model struct {
	input    textinput.Model
	cardName string
	cardID   string
	toStage  pipeline.Stage
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "motivo da reprovação..."
	ti.CharLimit = 300
	return Model{input: ti}
}

// Open prepares the modal for one pending rejection.
func (m *Model) Open(cardID, cardName string, to pipeline.Stage) {
	m.cardID = cardID
	m.cardName = cardName
	m.toStage = to
	m.input.SetValue("")
	m.input.Focus()
}

func (m Model) CardID() string { return m.cardID }
func (m Model) ToStage() pipeline.Stage { return m.toStage }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) HandleKey(msg tea.KeyMsg) KeyResult {
	switch msg.String() {
	case "esc":
		return KeyResult{Action: ActionCancel}
	case "enter":
		note := strings.TrimSpace(m.input.Value())
		if note == "" {
			return KeyResult{Action: ActionNone}
		}
		return KeyResult{Action: ActionSubmit, Note: note}
	}
	return KeyResult{Action: ActionNone}
}

func (m Model) ViewOverlay(w, h int) string {
	var b strings.Builder
	b.WriteString(shared.ModalTitleStyle.Render("Reprovar candidato"))
	b.WriteString("\n\n")
	b.WriteString(shared.CardMetaStyle.Render(m.cardName))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(shared.HelpDescStyle.Render("enter: confirmar  esc: cancelar"))

	overlay := shared.ModalOverlayStyle.Render(b.String())
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
