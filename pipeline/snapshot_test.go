package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	s := &Snapshot{
		Kind:  ApplicationPipeline,
		Title: "Dev Backend Sênior",
		Columns: []Column{
			{Key: StageSubmitted, Label: StageSubmitted.Label()},
			{Key: StageScreening, Label: StageScreening.Label()},
			{Key: StageRecruiterInterview, Label: StageRecruiterInterview.Label()},
			{Key: StageRejected, Label: StageRejected.Label()},
		},
		Cards: []Card{
			{ID: "a1", CurrentStage: StageSubmitted, Name: "Ana Lima", Score: 82},
			{ID: "a2", CurrentStage: StageSubmitted, Name: "Bruno Costa", Score: 65},
			{ID: "a3", CurrentStage: StageScreening, Name: "Clara Souza", Score: 91},
		},
	}
	s.RecountColumns()
	return s
}

func TestMoveCardLeavesReceiverUntouched(t *testing.T) {
	snap := testSnapshot()
	moved := snap.MoveCard("a1", StageScreening)

	require.NotSame(t, snap, moved)
	assert.Equal(t, StageSubmitted, snap.FindCard("a1").CurrentStage)
	assert.Equal(t, StageScreening, moved.FindCard("a1").CurrentStage)

	// Counts follow the card on the copy only.
	assert.Equal(t, 2, snap.Columns[0].Count)
	assert.Equal(t, 1, snap.Columns[1].Count)
	assert.Equal(t, 1, moved.Columns[0].Count)
	assert.Equal(t, 2, moved.Columns[1].Count)
}

func TestMoveCardNoOps(t *testing.T) {
	snap := testSnapshot()

	assert.Same(t, snap, snap.MoveCard("missing", StageScreening))
	assert.Same(t, snap, snap.MoveCard("a1", StageSubmitted))
}

func TestMoveCardPreservesTotalCount(t *testing.T) {
	snap := testSnapshot()
	total := snap.TotalCount()

	moved := snap.MoveCard("a2", StageScreening).
		MoveCard("a3", StageRecruiterInterview).
		MoveCard("a1", StageScreening)

	assert.Equal(t, total, moved.TotalCount())
	assert.Equal(t, len(moved.Cards), moved.TotalCount())
}

func TestCardsInPreservesBoardOrder(t *testing.T) {
	snap := testSnapshot()
	cards := snap.CardsIn(StageSubmitted)

	require.Len(t, cards, 2)
	assert.Equal(t, "a1", cards[0].ID)
	assert.Equal(t, "a2", cards[1].ID)
	assert.Empty(t, snap.CardsIn(StageRejected))
}

func TestRecountColumnsFixesServerCounts(t *testing.T) {
	snap := testSnapshot()
	snap.Columns[0].Count = 99
	snap.Columns[3].Count = -1

	snap.RecountColumns()

	assert.Equal(t, 2, snap.Columns[0].Count)
	assert.Equal(t, 0, snap.Columns[3].Count)
	assert.Equal(t, len(snap.Cards), snap.TotalCount())
}
