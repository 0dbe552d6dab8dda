// Package filtermodal edits the application-board filters. The filters go
// to the server with the next load; cards are never filtered locally, so
// the column counts stay authoritative.
package filtermodal

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/api"
	"github.com/rafael/talentboard/tui/shared"
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionCancel
	ActionApply
)

type KeyResult struct {
	Action  ActionKind
	Filters api.Filters
}

type Model struct {
	city     textinput.Model
	minScore textinput.Model
	mustHave bool
	focus    int // 0=city 1=minScore 2=mustHave
}

func New() Model {
	city := textinput.New()
	city.Placeholder = "cidade..."
	city.CharLimit = 60

	score := textinput.New()
	score.Placeholder = "score mínimo..."
	score.CharLimit = 3

	return Model{city: city, minScore: score}
}

func (m *Model) Open(current api.Filters) {
	m.city.SetValue(current.City)
	if current.MinScore > 0 {
		m.minScore.SetValue(strconv.Itoa(current.MinScore))
	} else {
		m.minScore.SetValue("")
	}
	m.mustHave = current.HasMustHave
	m.focus = 0
	m.city.Focus()
	m.minScore.Blur()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.city, cmd = m.city.Update(msg)
	case 1:
		m.minScore, cmd = m.minScore.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleFocus() {
	m.focus = (m.focus + 1) % 3
	m.city.Blur()
	m.minScore.Blur()
	switch m.focus {
	case 0:
		m.city.Focus()
	case 1:
		m.minScore.Focus()
	}
}

func (m *Model) HandleKey(msg tea.KeyMsg) KeyResult {
	switch msg.String() {
	case "esc":
		return KeyResult{Action: ActionCancel}
	case "tab":
		m.cycleFocus()
	case " ":
		if m.focus == 2 {
			m.mustHave = !m.mustHave
		}
	case "enter":
		f := api.Filters{
			City:        strings.TrimSpace(m.city.Value()),
			HasMustHave: m.mustHave,
		}
		if v, err := strconv.Atoi(strings.TrimSpace(m.minScore.Value())); err == nil && v > 0 {
			f.MinScore = v
		}
		return KeyResult{Action: ActionApply, Filters: f}
	}
	return KeyResult{Action: ActionNone}
}

func (m Model) ViewOverlay(w, h int) string {
	var b strings.Builder
	b.WriteString(shared.ModalTitleStyle.Render("Filtros"))
	b.WriteString("\n\n")
	b.WriteString("Cidade:      ")
	b.WriteString(m.city.View())
	b.WriteString("\n")
	b.WriteString("Score mín.:  ")
	b.WriteString(m.minScore.View())
	b.WriteString("\n")

	check := "[ ]"
	if m.mustHave {
		check = "[x]"
	}
	line := check + " apenas must-have"
	if m.focus == 2 {
		line = shared.CursorStyle.Render(line)
	}
	b.WriteString(line)
	b.WriteString("\n\n")
	b.WriteString(shared.HelpDescStyle.Render("tab: próximo campo  space: alternar  enter: aplicar  esc: cancelar"))

	overlay := shared.ModalOverlayStyle.Render(b.String())
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
