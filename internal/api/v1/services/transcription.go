// Package services holds the v1 API business logic between handlers and the
// app layer.
package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/nocdn/transcriptions-ssr/internal/api/errors"
	"github.com/nocdn/transcriptions-ssr/internal/api/v1/dto"
	"github.com/nocdn/transcriptions-ssr/internal/app/api"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository"
	"github.com/nocdn/transcriptions-ssr/internal/app/storage"
)

// TranscriptionService exposes the transcription operations behind the API.
type TranscriptionService interface {
	Transcribe(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*dto.TranscribeResponse, error)
	List(ctx context.Context, limit int) (*dto.TranscriptionsListResponse, error)
	Delete(ctx context.Context, id int64) error
}

type transcriptionService struct {
	transcriber api.Transcriber
	store       repository.HistoryDAO
	archive     storage.Archiver
	logger      *slog.Logger
}

// NewTranscriptionService wires the provider, history store and optional
// audio archive. Pass a nil archive to disable archiving.
func NewTranscriptionService(transcriber api.Transcriber, store repository.HistoryDAO, archive storage.Archiver, logger *slog.Logger) TranscriptionService {
	return &transcriptionService{
		transcriber: transcriber,
		store:       store,
		archive:     archive,
		logger:      logger,
	}
}

// Transcribe forwards the upload to the remote provider and records the
// result. The transcription is returned even when persistence fails.
func (s *transcriptionService) Transcribe(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*dto.TranscribeResponse, error) {
	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewBadRequestError("Failed to read uploaded file")
	}

	text, err := s.transcriber.Transcribe(ctx, bytes.NewReader(payload), header.Filename)
	if err != nil {
		return nil, mapTranscribeError(err)
	}

	var archiveKey string
	if s.archive != nil {
		contentType := header.Header.Get("Content-Type")
		key, archiveErr := s.archive.Archive(ctx, header.Filename, contentType, payload)
		if archiveErr != nil {
			s.logger.Warn("failed to archive audio payload", "filename", header.Filename, "error", archiveErr)
		} else {
			archiveKey = key
			s.logger.Info("archived audio payload", "key", key)
		}
	}

	if _, appendErr := s.store.Append(header.Filename, text); appendErr != nil {
		s.logger.Error("failed to persist transcription", "filename", header.Filename, "error", appendErr)
		// Without a history record the archived audio is unreachable.
		if archiveKey != "" {
			if removeErr := s.archive.Remove(ctx, archiveKey); removeErr != nil {
				s.logger.Warn("failed to remove orphaned archive object", "key", archiveKey, "error", removeErr)
			}
		}
	}

	return &dto.TranscribeResponse{Text: text}, nil
}

// List returns the most recent records, newest first.
func (s *transcriptionService) List(ctx context.Context, limit int) (*dto.TranscriptionsListResponse, error) {
	if limit <= 0 || limit > repository.DefaultHistoryLimit {
		limit = repository.DefaultHistoryLimit
	}

	records, err := s.store.List(limit)
	if err != nil {
		s.logger.Error("failed to list transcriptions", "error", err)
		return nil, errors.NewInternalError("Failed to load history")
	}

	return &dto.TranscriptionsListResponse{
		Transcriptions: dto.TranscriptionsFromModels(records),
	}, nil
}

// Delete removes one history record.
func (s *transcriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(id); err != nil {
		s.logger.Error("failed to delete transcription", "id", id, "error", err)
		return errors.NewInternalError("Failed to delete record")
	}
	return nil
}

func mapTranscribeError(err error) *errors.APIError {
	switch {
	case stderrors.Is(err, apperrors.ErrRateLimit):
		return errors.NewRateLimitedError("Transcription provider rate limit reached")
	case stderrors.Is(err, apperrors.ErrSizeLimit):
		return errors.NewTooLargeError("Audio file exceeds the provider size limit")
	case stderrors.Is(err, apperrors.ErrTranscription):
		return errors.NewServiceUnavailableError("Transcription provider returned no usable text")
	default:
		return errors.NewInternalError("Transcription failed")
	}
}
