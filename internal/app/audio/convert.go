package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

// Decoder turns a compressed audio payload into raw float samples.
type Decoder interface {
	Decode(ctx context.Context, data []byte, format Format) (*PCM, error)
}

// File is a named audio payload ready for submission.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Size returns the payload length in bytes.
func (f *File) Size() int64 { return int64(len(f.Data)) }

// Converter packages finalized recordings for submission. Opus-family payloads
// are decoded and re-encoded as linear PCM WAV; everything else passes through
// under its original media type. A decode failure falls back to packaging the
// original bytes rather than aborting the submission.
type Converter struct {
	decoder Decoder
	logger  *slog.Logger
	nowMs   func() int64
}

// NewConverter creates a converter using the given decoder.
func NewConverter(decoder Decoder, logger *slog.Logger) *Converter {
	return &Converter{
		decoder: decoder,
		logger:  logger,
		nowMs:   func() int64 { return time.Now().UnixMilli() },
	}
}

// Convert packages a recorded payload according to the conversion policy.
func (c *Converter) Convert(ctx context.Context, data []byte, format Format) (*File, error) {
	if format.IsRawPCM() {
		return c.convertRaw(data, format)
	}
	if !format.IsOpusFamily() {
		return &File{
			Name:     c.fileName(format.FallbackExt()),
			MimeType: format.MimeType,
			Data:     data,
		}, nil
	}

	pcm, err := c.decoder.Decode(ctx, data, format)
	if err != nil {
		c.logger.Warn("decode failed, packaging original payload",
			"mime_type", format.MimeType,
			"error", apperrors.Wrap(err, apperrors.ErrDecode.Error()).Error(),
		)
		return &File{
			Name:     c.fileName(format.FallbackExt()),
			MimeType: format.MimeType,
			Data:     data,
		}, nil
	}

	wav, err := EncodeWAV(pcm)
	if err != nil {
		return nil, fmt.Errorf("wav encode failed: %w", err)
	}

	return &File{
		Name:     c.fileName("wav"),
		MimeType: "audio/wav",
		Data:     wav,
	}, nil
}

// convertRaw wraps interleaved float32 capture data straight into a WAV
// container. No decoder round-trip is needed.
func (c *Converter) convertRaw(data []byte, format Format) (*File, error) {
	sampleRate, channels, ok := format.RawPCMParams()
	if !ok {
		return nil, fmt.Errorf("raw PCM payload missing stream parameters: %q", format.MimeType)
	}
	pcm, err := deinterleave(data, channels, sampleRate)
	if err != nil {
		return nil, err
	}
	wav, err := EncodeWAV(pcm)
	if err != nil {
		return nil, fmt.Errorf("wav encode failed: %w", err)
	}
	return &File{
		Name:     c.fileName("wav"),
		MimeType: "audio/wav",
		Data:     wav,
	}, nil
}

func (c *Converter) fileName(ext string) string {
	return fmt.Sprintf("recording-%d.%s", c.nowMs(), ext)
}
