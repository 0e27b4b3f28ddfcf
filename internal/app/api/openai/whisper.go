// Package openai implements transcription against the OpenAI Whisper API as
// an alternative to the default Mistral provider.
package openai

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

// WhisperTranscriber implements remote transcription using the OpenAI API.
type WhisperTranscriber struct {
	client *openai.Client
}

// NewWhisperTranscriber creates a transcriber for the given API key.
func NewWhisperTranscriber(apiKey string) *WhisperTranscriber {
	return &WhisperTranscriber{client: openai.NewClient(apiKey)}
}

// Transcribe uses the OpenAI API for remote transcription.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
	}
	resp, err := w.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", mapAPIError(err)
	}
	if resp.Text == "" {
		return "", apperrors.Wrap(apperrors.ErrTranscription, "no transcription in response")
	}
	return resp.Text, nil
}

func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return apperrors.Wrapf(apperrors.ErrRateLimit, "openai returned status %d", apiErr.HTTPStatusCode)
		case 413:
			return apperrors.Wrapf(apperrors.ErrSizeLimit, "openai returned status %d", apiErr.HTTPStatusCode)
		}
	}
	return apperrors.Wrap(err, apperrors.ErrTranscription.Error())
}
