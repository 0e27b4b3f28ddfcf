package api

import (
	"context"
	"io"
)

// Transcriber converts an audio payload to text. Implementations map remote
// failure modes onto the shared error taxonomy: ErrRateLimit for throttling,
// ErrSizeLimit for payload rejection, ErrTranscription for anything else.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
