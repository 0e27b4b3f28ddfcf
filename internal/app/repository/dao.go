package repository

import (
	"github.com/nocdn/transcriptions-ssr/internal/app/model"
)

// DefaultHistoryLimit caps how many records the history view fetches.
const DefaultHistoryLimit = 50

// HistoryDAO is the persistence contract for the transcription history. All
// faults surface as ErrPersistence-wrapped errors; callers treat them as
// non-fatal.
type HistoryDAO interface {
	Close() error

	// Append stores a new record and returns its assigned identifier.
	Append(source, text string) (int64, error)

	// List returns up to limit records, newest first.
	List(limit int) ([]model.Transcription, error)

	// DeleteByID removes a single record.
	DeleteByID(id int64) error
}
