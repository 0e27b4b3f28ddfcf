package model

import "time"

// Transcription is one persisted history record. Records are created once when a
// remote transcription succeeds and are only ever deleted, never updated.
type Transcription struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Source        string    `json:"source"`
	Transcription string    `json:"transcription"`
}
