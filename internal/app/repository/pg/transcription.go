package pg

import (
	"database/sql"

	_ "github.com/lib/pq"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id SERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	source TEXT NOT NULL,
	transcription TEXT NOT NULL
)`

// PostgresDB stores transcription history in Postgres.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens a connection and ensures the history table exists.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open database")
	}
	pdb := &PostgresDB{db: db}
	if err := pdb.ensureTable(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return pdb, nil
}

func (pdb *PostgresDB) ensureTable() error {
	if _, err := pdb.db.Exec(createTableSQL); err != nil {
		return apperrors.Wrap(err, apperrors.ErrPersistence.Error())
	}
	return nil
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) Append(source, text string) (int64, error) {
	insertSQL := `INSERT INTO transcriptions (source, transcription) VALUES ($1, $2) RETURNING id`
	var id int64
	if err := pdb.db.QueryRow(insertSQL, source, text).Scan(&id); err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrPersistence, "insert failed: %v", err)
	}
	return id, nil
}

func (pdb *PostgresDB) List(limit int) ([]model.Transcription, error) {
	query := `
		SELECT id, created_at, source, transcription
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := pdb.db.Query(query, limit)
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

func (pdb *PostgresDB) DeleteByID(id int64) error {
	if _, err := pdb.db.Exec(`DELETE FROM transcriptions WHERE id = $1`, id); err != nil {
		return apperrors.Wrapf(apperrors.ErrPersistence, "delete failed: %v", err)
	}
	return nil
}
