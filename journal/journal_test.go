package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndRecent(t *testing.T) {
	db := openTestJournal(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	moves := []Entry{
		{Board: "applications", CardID: "a1", CardName: "Ana Lima", FromStage: "submitted", ToStage: "screening", MovedAt: base},
		{Board: "applications", CardID: "a2", CardName: "Bruno Costa", FromStage: "screening", ToStage: "rejected", Note: "perfil fora do escopo", MovedAt: base.Add(time.Minute)},
		{Board: "jobs", CardID: "v1", CardName: "Dev Frontend", FromStage: "triagem", ToStage: "entrevistas", MovedAt: base.Add(2 * time.Minute)},
	}
	for _, m := range moves {
		require.NoError(t, db.Record(m))
	}

	entries, err := db.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "v1", entries[0].CardID)
	assert.Equal(t, "a2", entries[1].CardID)
	assert.Equal(t, "a1", entries[2].CardID)

	assert.Equal(t, "perfil fora do escopo", entries[1].Note)
	assert.True(t, entries[2].MovedAt.Equal(base))
}

func TestRecentHonorsLimit(t *testing.T) {
	db := openTestJournal(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Record(Entry{
			Board: "applications", CardID: "a1", CardName: "Ana Lima",
			FromStage: "submitted", ToStage: "screening",
		}))
	}

	entries, err := db.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCardHistory(t *testing.T) {
	db := openTestJournal(t)

	base := time.Now().Truncate(time.Second)
	require.NoError(t, db.Record(Entry{Board: "applications", CardID: "a1", CardName: "Ana Lima", FromStage: "submitted", ToStage: "screening", MovedAt: base}))
	require.NoError(t, db.Record(Entry{Board: "applications", CardID: "a2", CardName: "Bruno Costa", FromStage: "submitted", ToStage: "screening", MovedAt: base}))
	require.NoError(t, db.Record(Entry{Board: "applications", CardID: "a1", CardName: "Ana Lima", FromStage: "screening", ToStage: "recruiter_interview", MovedAt: base.Add(time.Minute)}))

	entries, err := db.CardHistory("a1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "recruiter_interview", entries[0].ToStage)
	assert.Equal(t, "screening", entries[1].ToStage)
}

func TestRecordFillsTimestamp(t *testing.T) {
	db := openTestJournal(t)

	require.NoError(t, db.Record(Entry{Board: "jobs", CardID: "v1", CardName: "Tech Lead", FromStage: "selecao", ToStage: "envio_cliente"}))

	entries, err := db.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.WithinDuration(t, time.Now(), entries[0].MovedAt, time.Minute)
}
