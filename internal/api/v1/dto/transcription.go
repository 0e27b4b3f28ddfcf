// Package dto defines the request and response shapes of the v1 API.
package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/nocdn/transcriptions-ssr/internal/app/model"
)

// TranscriptionResponse is one transcription record as returned by the API.
type TranscriptionResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
}

// TranscriptionFromModel converts a storage record.
func TranscriptionFromModel(t model.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		Source:    t.Source,
		Text:      t.Transcription,
	}
}

// TranscriptionsFromModels converts a record list, preserving order.
func TranscriptionsFromModels(records []model.Transcription) []TranscriptionResponse {
	return lo.Map(records, func(t model.Transcription, _ int) TranscriptionResponse {
		return TranscriptionFromModel(t)
	})
}

// ListTranscriptionsQuery bounds the history listing.
type ListTranscriptionsQuery struct {
	Limit int `form:"limit,default=50" binding:"omitempty,min=1,max=50"`
}

// TranscriptionsListResponse wraps the history listing.
type TranscriptionsListResponse struct {
	Transcriptions []TranscriptionResponse `json:"transcriptions"`
}

// TranscribeResponse is the result of a synchronous transcription.
type TranscribeResponse struct {
	Text string `json:"text"`
}
