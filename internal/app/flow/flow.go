// Package flow drives a submission from file selection through remote
// transcription to display and history, as a closed state machine.
package flow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/nocdn/transcriptions-ssr/internal/app/api"
	"github.com/nocdn/transcriptions-ssr/internal/app/clipboard"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
	"github.com/nocdn/transcriptions-ssr/internal/app/model"
	"github.com/nocdn/transcriptions-ssr/internal/app/repository"
)

// MaxPayloadBytes is the submission ceiling. The server enforces the same
// limit independently.
const MaxPayloadBytes = 100 << 20

// Stage is the current state of the widget flow.
type Stage int

const (
	StageInitial Stage = iota
	StageProcessing
	StageDone
	StageRateLimited
	StageSizeExceeded
	StageHistory
)

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageProcessing:
		return "processing"
	case StageDone:
		return "done"
	case StageRateLimited:
		return "rate_limited"
	case StageSizeExceeded:
		return "size_exceeded"
	case StageHistory:
		return "history"
	default:
		return "unknown"
	}
}

// File is a submission payload from any input channel: picker, drop or a
// finalized recording.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Controller owns the submission state machine. One submission job is in
// flight at most; stages advance strictly in sequence within a job.
type Controller struct {
	transcriber api.Transcriber
	store       repository.HistoryDAO
	clip        clipboard.Writer
	logger      *slog.Logger

	mu         sync.Mutex
	stage      Stage
	resultText string
	history    []model.Transcription
	generation uint64

	hold     *pendingHold
	newTimer timerFactory
}

// NewController creates a controller in the initial stage.
func NewController(transcriber api.Transcriber, store repository.HistoryDAO, clip clipboard.Writer, logger *slog.Logger) *Controller {
	return &Controller{
		transcriber: transcriber,
		store:       store,
		clip:        clip,
		logger:      logger,
		stage:       StageInitial,
		newTimer:    defaultTimerFactory,
	}
}

// Stage returns the current stage.
func (c *Controller) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// ResultText returns the currently displayed transcription, if any.
func (c *Controller) ResultText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resultText
}

// History returns the cached history records, newest first.
func (c *Controller) History() []model.Transcription {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Transcription, len(c.history))
	copy(out, c.history)
	return out
}

// Submit validates the payload and drives it through remote transcription.
// Submissions are accepted from the initial, done and overlay stages only:
// one job is in flight at most, and the history view must be closed first.
// On success the text is copied to the clipboard, displayed, and a history
// append is attempted exactly once; an append failure never blocks the done
// stage. Any remote failure other than rate limiting or size rejection
// resets the flow to initial.
func (c *Controller) Submit(ctx context.Context, file File, source string) error {
	c.mu.Lock()
	if c.stage == StageProcessing {
		c.mu.Unlock()
		return apperrors.New("submission already in flight")
	}
	if c.stage == StageHistory {
		// History owns the pending hold timer; leave via Back first.
		c.mu.Unlock()
		return apperrors.New("close history before submitting")
	}
	if file.Size > MaxPayloadBytes {
		c.stage = StageSizeExceeded
		c.mu.Unlock()
		return apperrors.Wrapf(apperrors.ErrSizeLimit, "%d bytes exceeds %d byte ceiling", file.Size, MaxPayloadBytes)
	}
	if source == "" {
		source = file.Name
	}
	if source == "" {
		source = "upload"
	}
	c.stage = StageProcessing
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	text, err := c.transcriber.Transcribe(ctx, file.Content, file.Name)

	c.mu.Lock()
	if gen != c.generation {
		// A newer submission superseded this one; drop the response.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateLimit):
			c.stage = StageRateLimited
		case errors.Is(err, apperrors.ErrSizeLimit):
			c.stage = StageSizeExceeded
		default:
			c.logger.Error("transcription request failed", "source", source, "error", err)
			c.stage = StageInitial
		}
		c.mu.Unlock()
		return err
	}

	if copyErr := c.clip.Write(text); copyErr != nil {
		c.logger.Warn("clipboard write failed", "error", copyErr)
	}
	c.resultText = text
	c.stage = StageDone
	c.mu.Unlock()

	// Fire-and-forget relative to the display: an append failure is logged
	// and otherwise ignored.
	if _, appendErr := c.store.Append(source, text); appendErr != nil {
		c.logger.Error("failed to persist transcription", "source", source, "error", appendErr)
	}
	return nil
}

// OpenHistory fetches the most recent records and enters the history stage.
// A store fault degrades to an empty list rather than failing.
func (c *Controller) OpenHistory() {
	records := c.fetchHistory()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageInitial {
		return
	}
	c.history = records
	c.stage = StageHistory
}

// RefreshHistory re-fetches the record list while the history view is open.
func (c *Controller) RefreshHistory() {
	records := c.fetchHistory()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageHistory {
		return
	}
	c.history = records
}

func (c *Controller) fetchHistory() []model.Transcription {
	records, err := c.store.List(repository.DefaultHistoryLimit)
	if err != nil {
		c.logger.Error("failed to fetch history", "error", err)
		return []model.Transcription{}
	}
	return records
}

// Back leaves the history view.
func (c *Controller) Back() {
	c.releaseHold()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage == StageHistory {
		c.stage = StageInitial
	}
}

// SelectHistoryEntry reuses a stored transcription: the text is re-copied to
// the clipboard and displayed, without a new persistence call.
func (c *Controller) SelectHistoryEntry(id int64) error {
	c.mu.Lock()
	if c.stage != StageHistory {
		c.mu.Unlock()
		return apperrors.New("no history entry selected")
	}
	var found *model.Transcription
	for i := range c.history {
		if c.history[i].ID == id {
			found = &c.history[i]
			break
		}
	}
	if found == nil {
		c.mu.Unlock()
		return apperrors.Newf("history entry %d not found", id)
	}
	text := found.Transcription
	c.resultText = text
	c.stage = StageDone
	c.mu.Unlock()

	if err := c.clip.Write(text); err != nil {
		c.logger.Warn("clipboard write failed", "error", err)
	}
	return nil
}

// ClearResult dismisses the displayed transcription.
func (c *Controller) ClearResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage == StageDone {
		c.resultText = ""
		c.stage = StageInitial
	}
}

// DismissOverlay rearms a rate-limit or size overlay back to initial.
func (c *Controller) DismissOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage == StageRateLimited || c.stage == StageSizeExceeded {
		c.stage = StageInitial
	}
}
