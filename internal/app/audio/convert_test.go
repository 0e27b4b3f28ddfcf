package audio

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDecoder struct {
	pcm *PCM
	err error
}

func (s *stubDecoder) Decode(_ context.Context, _ []byte, _ Format) (*PCM, error) {
	return s.pcm, s.err
}

func newTestConverter(dec Decoder) *Converter {
	c := NewConverter(dec, slog.Default())
	c.nowMs = func() int64 { return 1700000000000 }
	return c
}

func TestConverter_OpusPayloadBecomesWAV(t *testing.T) {
	dec := &stubDecoder{pcm: sinePCM(1, 160, 16000)}
	c := newTestConverter(dec)

	file, err := c.Convert(context.Background(), []byte("opus-bytes"), Format{MimeType: "audio/webm;codecs=opus", Ext: "webm"})
	require.NoError(t, err)

	assert.Equal(t, "recording-1700000000000.wav", file.Name)
	assert.Equal(t, "audio/wav", file.MimeType)
	assert.NoError(t, ValidateWAV(file.Data))
	assert.EqualValues(t, 44+160*2, file.Size())
}

func TestConverter_NonOpusPayloadPassesThrough(t *testing.T) {
	dec := &stubDecoder{err: errors.New("decoder must not be called")}
	c := newTestConverter(dec)

	payload := []byte{0x00, 0x01, 0x02}
	file, err := c.Convert(context.Background(), payload, Format{MimeType: "audio/mp4", Ext: "m4a"})
	require.NoError(t, err)

	assert.Equal(t, "recording-1700000000000.m4a", file.Name)
	assert.Equal(t, "audio/mp4", file.MimeType)
	assert.Equal(t, payload, file.Data)
}

func TestConverter_DecodeFailureFallsBackToOriginalBytes(t *testing.T) {
	dec := &stubDecoder{err: errors.New("corrupt stream")}
	c := newTestConverter(dec)

	payload := []byte("unreadable-opus")
	file, err := c.Convert(context.Background(), payload, Format{MimeType: "audio/ogg;codecs=opus", Ext: "ogg"})
	require.NoError(t, err, "decode failure must not abort the submission")

	assert.Equal(t, "recording-1700000000000.ogg", file.Name)
	assert.Equal(t, "audio/ogg;codecs=opus", file.MimeType)
	assert.Equal(t, payload, file.Data)
}

func TestConverter_DeterministicForSameSamples(t *testing.T) {
	dec := &stubDecoder{pcm: sinePCM(2, 480, 48000)}
	c := newTestConverter(dec)

	first, err := c.Convert(context.Background(), []byte("a"), Format{MimeType: "audio/webm"})
	require.NoError(t, err)
	second, err := c.Convert(context.Background(), []byte("a"), Format{MimeType: "audio/webm"})
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}
