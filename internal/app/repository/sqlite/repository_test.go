package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocdn/transcriptions-ssr/internal/app/repository"
)

func TestSQLiteDB_Interface(t *testing.T) {
	var _ repository.HistoryDAO = (*SQLiteDB)(nil)
}

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	db, err := NewSQLiteDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteDB_AppendAndList(t *testing.T) {
	db := newTestDB(t)

	first, err := db.Append("recording", "first transcription")
	require.NoError(t, err)
	second, err := db.Append("notes.mp3", "second transcription")
	require.NoError(t, err)
	assert.Greater(t, second, first, "identifiers are assigned in creation order")

	records, err := db.List(50)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, second, records[0].ID)
	assert.Equal(t, "notes.mp3", records[0].Source)
	assert.Equal(t, "second transcription", records[0].Transcription)
	assert.Equal(t, first, records[1].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestSQLiteDB_ListHonorsLimit(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		_, err := db.Append("recording", "text")
		require.NoError(t, err)
	}

	records, err := db.List(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSQLiteDB_ListEmpty(t *testing.T) {
	db := newTestDB(t)

	records, err := db.List(50)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSQLiteDB_DeleteByID(t *testing.T) {
	db := newTestDB(t)

	id, err := db.Append("recording", "to be deleted")
	require.NoError(t, err)
	keep, err := db.Append("recording", "to be kept")
	require.NoError(t, err)

	require.NoError(t, db.DeleteByID(id))

	records, err := db.List(50)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, keep, records[0].ID)

	// Deleting an already-deleted record is a no-op.
	assert.NoError(t, db.DeleteByID(id))
}
