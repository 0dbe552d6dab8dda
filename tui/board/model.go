// Package board renders a pipeline snapshot as kanban columns and turns
// keyboard grab-and-drop gestures into transition requests. It holds no
// board state of its own beyond cursor and drag toggles; cards and counts
// always come from the snapshot.
package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rafael/talentboard/pipeline"
	"github.com/rafael/talentboard/tui/shared"
)

type Model struct {
	snap     *pipeline.Snapshot
	pending  func(cardID string) bool
	colWidth int

	cursor struct {
		col int
		row int
	}

	// Drag state: a grabbed card keeps rendering in its source column while
	// targetCol tracks where h/l would drop it.
	grabbed   bool
	grabbedID string
	targetCol int

	spinnerView string
	hscroll     int // first visible column
	vscroll     int // first visible card row in the active column

	width  int
	height int
}

func New(colWidth int, pending func(cardID string) bool) Model {
	return Model{colWidth: colWidth, pending: pending}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.ensureColumnVisible()
}

// SetSnapshot swaps in a new snapshot, clamping the cursor and clearing the
// drag state if the grabbed card disappeared in the reload.
func (m *Model) SetSnapshot(snap *pipeline.Snapshot) {
	m.snap = snap
	if snap == nil {
		m.grabbed = false
		return
	}
	if m.cursor.col >= len(snap.Columns) {
		m.cursor.col = max(0, len(snap.Columns)-1)
	}
	m.clampRow()
	if m.grabbed && snap.FindCard(m.grabbedID) == nil {
		m.grabbed = false
		m.grabbedID = ""
	}
	m.ensureColumnVisible()
}

func (m *Model) SetSpinnerView(s string) { m.spinnerView = s }

func (m Model) Snapshot() *pipeline.Snapshot { return m.snap }

func (m *Model) clampRow() {
	n := len(m.columnCards(m.cursor.col))
	if m.cursor.row >= n {
		m.cursor.row = max(0, n-1)
	}
	m.ensureRowVisible()
}

func (m Model) columnCards(col int) []pipeline.Card {
	if m.snap == nil || col < 0 || col >= len(m.snap.Columns) {
		return nil
	}
	return m.snap.CardsIn(m.snap.Columns[col].Key)
}

// SelectedCard returns the card under the cursor.
func (m Model) SelectedCard() (*pipeline.Card, bool) {
	cards := m.columnCards(m.cursor.col)
	if m.cursor.row < 0 || m.cursor.row >= len(cards) {
		return nil, false
	}
	return m.snap.FindCard(cards[m.cursor.row].ID), true
}

// SelectedStage returns the stage of the cursor column (the drop target
// while dragging).
func (m Model) SelectedStage() (pipeline.Stage, bool) {
	col := m.cursor.col
	if m.grabbed {
		col = m.targetCol
	}
	if m.snap == nil || col >= len(m.snap.Columns) {
		return "", false
	}
	return m.snap.Columns[col].Key, true
}

func (m *Model) MoveLeft() {
	if m.grabbed {
		if m.targetCol > 0 {
			m.targetCol--
		}
		m.ensureColumnVisible()
		return
	}
	if m.cursor.col > 0 {
		m.cursor.col--
		m.cursor.row = 0
		m.vscroll = 0
		m.ensureColumnVisible()
	}
}

func (m *Model) MoveRight() {
	if m.snap == nil {
		return
	}
	if m.grabbed {
		if m.targetCol < len(m.snap.Columns)-1 {
			m.targetCol++
		}
		m.ensureColumnVisible()
		return
	}
	if m.cursor.col < len(m.snap.Columns)-1 {
		m.cursor.col++
		m.cursor.row = 0
		m.vscroll = 0
		m.ensureColumnVisible()
	}
}

func (m *Model) MoveUp() {
	if m.grabbed {
		return
	}
	if m.cursor.row > 0 {
		m.cursor.row--
		m.ensureRowVisible()
	}
}

func (m *Model) MoveDown() {
	if m.grabbed {
		return
	}
	if m.cursor.row < len(m.columnCards(m.cursor.col))-1 {
		m.cursor.row++
		m.ensureRowVisible()
	}
}

// Grab picks up the card under the cursor. Cards with a transition still
// resolving cannot be grabbed.
func (m *Model) Grab() bool {
	card, ok := m.SelectedCard()
	if !ok || m.grabbed {
		return false
	}
	if m.pending != nil && m.pending(card.ID) {
		return false
	}
	m.grabbed = true
	m.grabbedID = card.ID
	m.targetCol = m.cursor.col
	return true
}

// Drop releases the grabbed card over the target column. ok is false when
// nothing was grabbed; dropping on the source column is reported with the
// card's current stage and left for the engine to treat as a no-op.
func (m *Model) Drop() (cardID string, to pipeline.Stage, ok bool) {
	if !m.grabbed || m.snap == nil {
		return "", "", false
	}
	cardID = m.grabbedID
	to = m.snap.Columns[m.targetCol].Key
	m.grabbed = false
	m.grabbedID = ""
	return cardID, to, true
}

// CancelGrab drops the card back where it came from. No mutation happened
// yet, so there is nothing to undo.
func (m *Model) CancelGrab() {
	m.grabbed = false
	m.grabbedID = ""
}

func (m Model) Grabbed() bool { return m.grabbed }

// --- layout ---

func (m Model) visibleColumns() int {
	per := m.colWidth + 4 // border + padding
	if per <= 0 {
		return 1
	}
	n := m.width / per
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) ensureColumnVisible() {
	if m.snap == nil {
		return
	}
	focus := m.cursor.col
	if m.grabbed {
		focus = m.targetCol
	}
	vis := m.visibleColumns()
	if focus < m.hscroll {
		m.hscroll = focus
	} else if focus >= m.hscroll+vis {
		m.hscroll = focus - vis + 1
	}
}

// cardHeight is the rendered height of one card (title + meta + spacer).
const cardHeight = 3

func (m Model) visibleRows() int {
	rows := (m.height - 4) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) ensureRowVisible() {
	rows := m.visibleRows()
	if m.cursor.row < m.vscroll {
		m.vscroll = m.cursor.row
	} else if m.cursor.row >= m.vscroll+rows {
		m.vscroll = m.cursor.row - rows + 1
	}
}

// --- rendering ---

func (m Model) View() string {
	if m.snap == nil {
		return ""
	}

	vis := m.visibleColumns()
	end := m.hscroll + vis
	if end > len(m.snap.Columns) {
		end = len(m.snap.Columns)
	}

	var cols []string
	for i := m.hscroll; i < end; i++ {
		cols = append(cols, m.renderColumn(i))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	if end < len(m.snap.Columns) {
		view += "\n" + shared.CardMetaStyle.Render(
			fmt.Sprintf("→ %d more columns", len(m.snap.Columns)-end))
	}
	return view
}

func (m Model) renderColumn(col int) string {
	column := m.snap.Columns[col]
	cards := m.snap.CardsIn(column.Key)

	var b strings.Builder
	count := fmt.Sprintf(" %d", column.Count)
	// Clip the plain label before styling; cutting a styled string would
	// land inside its escape sequences.
	label := truncate(column.Label, m.colWidth-lipgloss.Width(count))
	b.WriteString(shared.StageAccent(string(column.Key)).Render(label))
	b.WriteString(shared.ColumnCountStyle.Render(count))
	b.WriteString("\n\n")

	offset := 0
	if col == m.cursor.col && !m.grabbed {
		offset = m.vscroll
	}
	rows := m.visibleRows()
	limit := offset + rows
	if limit > len(cards) {
		limit = len(cards)
	}

	for i := offset; i < limit; i++ {
		b.WriteString(m.renderCard(col, i, cards[i]))
		b.WriteString("\n")
	}

	if len(cards) == 0 {
		if m.snap.Kind == pipeline.JobPipeline {
			b.WriteString(shared.EmptyColumnStyle.Render("nenhuma vaga"))
		} else {
			b.WriteString(shared.EmptyColumnStyle.Render("nenhum candidato"))
		}
		b.WriteString("\n")
	} else if limit < len(cards) {
		b.WriteString(shared.CardMetaStyle.Render(fmt.Sprintf("  +%d more", len(cards)-limit)))
		b.WriteString("\n")
	}

	border := shared.ColumnBorderStyle
	if m.grabbed && col == m.targetCol {
		border = shared.ColumnBorderedTargetTint
	} else if !m.grabbed && col == m.cursor.col {
		border = shared.ColumnBorderActiveStyle
	}
	return border.Width(m.colWidth + 2).Render(b.String())
}

func (m Model) renderCard(col, row int, card pipeline.Card) string {
	isPending := m.pending != nil && m.pending(card.ID)
	isGrabbed := m.grabbed && card.ID == m.grabbedID
	isCursor := !m.grabbed && col == m.cursor.col && row == m.cursor.row

	name := card.Name
	if isPending && m.spinnerView != "" {
		name = m.spinnerView + " " + name
	}
	title := shared.CardTitleStyle.Render(truncate(name, m.colWidth))

	meta := m.cardMeta(card)

	line := title + "\n" + shared.CardMetaStyle.Render(truncate(meta, m.colWidth))
	switch {
	case isPending:
		line = shared.PendingStyle.Render(truncate(name, m.colWidth) + "\n" + truncate(meta, m.colWidth))
	case isGrabbed:
		line = shared.GrabbedStyle.Render(line)
	case isCursor:
		line = shared.CursorStyle.Render(line)
	}
	return line
}

func (m Model) cardMeta(card pipeline.Card) string {
	if m.snap.Kind == pipeline.JobPipeline {
		meta := fmt.Sprintf("%d candidaturas", card.Score)
		if card.City != "" {
			meta = card.City + " · " + meta
		}
		return meta
	}

	parts := []string{shared.ScoreStyle(card.Score).Render(fmt.Sprintf("%d", card.Score))}
	if card.City != "" {
		parts = append(parts, card.City)
	}
	if card.Badges.MustHaveOk {
		parts = append(parts, shared.BadgeStyle.Render("must-have"))
	}
	if card.Badges.Availability != "" && card.Badges.Availability != "N/A" {
		parts = append(parts, card.Badges.Availability)
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, w int) string {
	if w < 2 || lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w-1]) + "…"
}
