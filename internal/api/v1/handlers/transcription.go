// Package handlers contains the v1 HTTP endpoint implementations.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nocdn/transcriptions-ssr/internal/api/errors"
	"github.com/nocdn/transcriptions-ssr/internal/api/middleware"
	"github.com/nocdn/transcriptions-ssr/internal/api/v1/dto"
	"github.com/nocdn/transcriptions-ssr/internal/api/v1/services"
)

// TranscriptionHandler handles the transcription endpoints.
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler.
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// Transcribe handles POST /api/v1/transcriptions. The audio file arrives in
// the "audio" multipart field and is forwarded to the remote provider.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No audio file uploaded"))
		return
	}
	defer file.Close()

	response, err := h.service.Transcribe(c.Request.Context(), file, header)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcriptions.
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.List(c.Request.Context(), query.Limit)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/transcriptions/:id.
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid transcription ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
