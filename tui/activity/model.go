// Package activity renders the recent moves recorded in the local journal
// as a side pane next to the board.
package activity

import (
	"strings"
	"time"

	"github.com/rafael/talentboard/journal"
	"github.com/rafael/talentboard/pipeline"
	"github.com/rafael/talentboard/tui/shared"
)

type Model struct {
	entries []journal.Entry
	width   int
	height  int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *Model) SetEntries(entries []journal.Entry) {
	m.entries = entries
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(shared.ModalTitleStyle.Render("Atividade"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(shared.EmptyColumnStyle.Render("nenhuma mudança ainda"))
	}

	// Each entry takes 3 lines; keep within the pane height.
	limit := (m.height - 3) / 3
	if limit < 1 {
		limit = 1
	}
	if limit > len(m.entries) {
		limit = len(m.entries)
	}

	for _, e := range m.entries[:limit] {
		b.WriteString(shared.CardTitleStyle.Render(clip(e.CardName, m.width-2)))
		b.WriteString("\n")
		from := pipeline.Stage(e.FromStage).Label()
		to := pipeline.Stage(e.ToStage).Label()
		b.WriteString(shared.StageAccent(e.FromStage).Render(from))
		b.WriteString(shared.CardMetaStyle.Render(" → "))
		b.WriteString(shared.StageAccent(e.ToStage).Render(to))
		b.WriteString("\n")
		b.WriteString(shared.ActivityTimeStyle.Render(relativeTime(e.MovedAt)))
		b.WriteString("\n")
	}

	return shared.ActivityBorderStyle.Height(m.height).Render(b.String())
}

func clip(s string, w int) string {
	if w <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w-1]) + "…"
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "agora"
	case d < 24*time.Hour:
		return t.Format("15:04")
	default:
		return t.Format("02/01 15:04")
	}
}
