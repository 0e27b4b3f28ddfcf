package pg

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository"
)

// TestPostgresDB_Interface verifies PostgresDB implements the HistoryDAO interface
func TestPostgresDB_Interface(t *testing.T) {
	var _ repository.HistoryDAO = (*PostgresDB)(nil)
}

func newMockedDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresDB{db: db}, mock
}

func TestPostgresDB_Append(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		text        string
		mockSetup   func(mock sqlmock.Sqlmock)
		expectedID  int64
		expectError bool
	}{
		{
			name:   "successful_insert",
			source: "recording",
			text:   "hello world",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id"}).AddRow(42)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transcriptions (source, transcription) VALUES ($1, $2) RETURNING id")).
					WithArgs("recording", "hello world").
					WillReturnRows(rows)
			},
			expectedID: 42,
		},
		{
			name:   "insert_failure_maps_to_persistence_error",
			source: "upload",
			text:   "some text",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transcriptions (source, transcription) VALUES ($1, $2) RETURNING id")).
					WithArgs("upload", "some text").
					WillReturnError(errors.New("connection reset"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postgresDB, mock := newMockedDB(t)
			tt.mockSetup(mock)

			id, err := postgresDB.Append(tt.source, tt.text)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrPersistence))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresDB_List(t *testing.T) {
	postgresDB, mock := newMockedDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "source", "transcription"}).
		AddRow(3, now, "recording", "newest").
		AddRow(2, now.Add(-time.Hour), "upload", "middle").
		AddRow(1, now.Add(-2*time.Hour), "audio.mp3", "oldest")

	mock.ExpectQuery("SELECT id, created_at, source, transcription").
		WithArgs(50).
		WillReturnRows(rows)

	transcriptions, err := postgresDB.List(50)
	require.NoError(t, err)
	require.Len(t, transcriptions, 3)
	assert.EqualValues(t, 3, transcriptions[0].ID)
	assert.Equal(t, "newest", transcriptions[0].Transcription)
	assert.Equal(t, "audio.mp3", transcriptions[2].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_List_EmptyResult(t *testing.T) {
	postgresDB, mock := newMockedDB(t)

	mock.ExpectQuery("SELECT id, created_at, source, transcription").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "source", "transcription"}))

	transcriptions, err := postgresDB.List(50)
	require.NoError(t, err)
	assert.NotNil(t, transcriptions)
	assert.Empty(t, transcriptions)
}

func TestPostgresDB_List_QueryFailure(t *testing.T) {
	postgresDB, mock := newMockedDB(t)

	mock.ExpectQuery("SELECT id, created_at, source, transcription").
		WithArgs(50).
		WillReturnError(errors.New("relation does not exist"))

	_, err := postgresDB.List(50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPersistence))
}

func TestPostgresDB_DeleteByID(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		mockSetup   func(mock sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful_delete",
			id:   7,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transcriptions WHERE id = $1")).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "delete_of_missing_row_is_not_an_error",
			id:   999,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transcriptions WHERE id = $1")).
					WithArgs(int64(999)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "delete_failure_maps_to_persistence_error",
			id:   1,
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transcriptions WHERE id = $1")).
					WithArgs(int64(1)).
					WillReturnError(errors.New("connection reset"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postgresDB, mock := newMockedDB(t)
			tt.mockSetup(mock)

			err := postgresDB.DeleteByID(tt.id)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrPersistence))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresDB_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	postgresDB := &PostgresDB{db: db}
	mock.ExpectClose()

	assert.NoError(t, postgresDB.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
