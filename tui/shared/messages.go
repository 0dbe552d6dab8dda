package shared

import (
	"github.com/rafael/talentboard/api"
	"github.com/rafael/talentboard/journal"
	"github.com/rafael/talentboard/pipeline"
)

// BoardLoadedMsg delivers a fresh snapshot (or the load failure) to the app.
type BoardLoadedMsg struct {
	Snapshot *pipeline.Snapshot
	Err      error
}

// MoveResolvedMsg delivers the reconciled outcome of one transition.
type MoveResolvedMsg struct {
	Outcome pipeline.Outcome
}

// HistoryFetchedMsg delivers a card's stage history for the overlay.
type HistoryFetchedMsg struct {
	CardID   string
	CardName string
	Entries  []api.HistoryEntry
	Err      error
}

// ResultRecordedMsg reports a contratação result submission.
type ResultRecordedMsg struct {
	JobID  string
	Result string
	Err    error
}

// ActivityRefreshedMsg delivers recent journal entries for the side pane.
type ActivityRefreshedMsg struct {
	Entries []journal.Entry
	Err     error
}

// MoveRecordedMsg reports the journal write after a confirmed move.
type MoveRecordedMsg struct {
	Err error
}
