package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	source TEXT NOT NULL,
	transcription TEXT NOT NULL
)`

// SQLiteDB stores transcription history in a local SQLite file. Used for
// development and the desktop CLI, where no Postgres is around.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the database file and ensures the history table exists.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open database")
	}
	sdb := &SQLiteDB{db: db}
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Error())
	}
	return sdb, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Append(source, text string) (int64, error) {
	result, err := sdb.db.Exec(`INSERT INTO transcriptions (source, transcription) VALUES (?, ?)`, source, text)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrPersistence, "insert failed: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrPersistence, "insert id unavailable: %v", err)
	}
	return id, nil
}

func (sdb *SQLiteDB) List(limit int) ([]model.Transcription, error) {
	sqlStr := `
		SELECT id, created_at, source, transcription
		FROM transcriptions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	rows, err := sdb.db.Query(sqlStr, limit)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrPersistence, "query failed: %v", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.Source, &t.Transcription); err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrPersistence, "db scan failed: %v", err)
		}
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrPersistence, "rows iteration failed: %v", err)
	}
	return transcriptions, nil
}

func (sdb *SQLiteDB) DeleteByID(id int64) error {
	if _, err := sdb.db.Exec(`DELETE FROM transcriptions WHERE id = ?`, id); err != nil {
		return apperrors.Wrapf(apperrors.ErrPersistence, "delete failed: %v", err)
	}
	return nil
}
