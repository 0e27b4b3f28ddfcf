package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAV_HeaderLayout(t *testing.T) {
	tests := []struct {
		name       string
		channels   int
		samples    int
		sampleRate int
	}{
		{name: "mono_16k", channels: 1, samples: 320, sampleRate: 16000},
		{name: "stereo_44k", channels: 2, samples: 441, sampleRate: 44100},
		{name: "single_sample", channels: 1, samples: 1, sampleRate: 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := sinePCM(tt.channels, tt.samples, tt.sampleRate)

			data, err := EncodeWAV(pcm)
			require.NoError(t, err)

			// Exact total size: 44-byte header plus 2 bytes per sample per channel.
			assert.Len(t, data, 44+tt.samples*tt.channels*2)
			assert.Equal(t, "RIFF", string(data[0:4]))
			assert.Equal(t, "WAVE", string(data[8:12]))
			assert.Equal(t, "fmt ", string(data[12:16]))
			assert.Equal(t, "data", string(data[36:40]))
			require.NoError(t, ValidateWAV(data))
		})
	}
}

func TestEncodeWAV_Deterministic(t *testing.T) {
	pcm := sinePCM(2, 1000, 48000)

	first, err := EncodeWAV(pcm)
	require.NoError(t, err)
	second, err := EncodeWAV(pcm)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeWAV_RoundTripBound(t *testing.T) {
	pcm := &PCM{
		Channels: [][]float32{
			{-1.0, -0.5, -0.0001, 0, 0.0001, 0.5, 0.9999, 1.0},
		},
		SampleRate: 16000,
	}

	data, err := EncodeWAV(pcm)
	require.NoError(t, err)

	decoded, err := DecodeWAV(data)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.NumChannels())
	require.Equal(t, len(pcm.Channels[0]), decoded.NumSamples())
	assert.Equal(t, 16000, decoded.SampleRate)

	// One encode/decode cycle loses at most a single quantization step.
	for i, want := range pcm.Channels[0] {
		got := decoded.Channels[0][i]
		assert.LessOrEqual(t, math.Abs(float64(want-got)), 1.0/32768,
			"sample %d: want %f got %f", i, want, got)
	}
}

func TestEncodeWAV_ClampsOutOfRangeSamples(t *testing.T) {
	pcm := &PCM{
		Channels:   [][]float32{{-2.5, 3.0}},
		SampleRate: 8000,
	}

	data, err := EncodeWAV(pcm)
	require.NoError(t, err)

	decoded, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, decoded.Channels[0][0], 1.0/32768)
	assert.InDelta(t, 1.0, decoded.Channels[0][1], 1.0/32768)
}

func TestEncodeWAV_InterleavesChannelMajor(t *testing.T) {
	pcm := &PCM{
		Channels: [][]float32{
			{0.5, 0.5},
			{-0.5, -0.5},
		},
		SampleRate: 8000,
	}

	data, err := EncodeWAV(pcm)
	require.NoError(t, err)
	require.Len(t, data, 44+2*2*2)

	// Frame 0 holds channel 0 then channel 1 for sample index 0.
	left := int16(uint16(data[44]) | uint16(data[45])<<8)
	right := int16(uint16(data[46]) | uint16(data[47])<<8)
	assert.Greater(t, left, int16(0))
	assert.Less(t, right, int16(0))
}

func TestEncodeWAV_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		pcm  *PCM
	}{
		{name: "nil_buffer", pcm: nil},
		{name: "no_channels", pcm: &PCM{SampleRate: 16000}},
		{name: "zero_sample_rate", pcm: &PCM{Channels: [][]float32{{0}}, SampleRate: 0}},
		{name: "ragged_channels", pcm: &PCM{Channels: [][]float32{{0, 0}, {0}}, SampleRate: 16000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeWAV(tt.pcm)
			assert.Error(t, err)
		})
	}
}

func TestDecodeWAV_RejectsMalformedData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "too_short", data: []byte("RIFF")},
		{name: "not_riff", data: make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWAV(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeWAV_RejectsTruncatedData(t *testing.T) {
	encoded, err := EncodeWAV(sinePCM(1, 4, 16000))
	require.NoError(t, err)

	// The header still declares the full data size.
	truncated := make([]byte, len(encoded)-4)
	copy(truncated, encoded)

	_, err = DecodeWAV(truncated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func sinePCM(channels, samples, sampleRate int) *PCM {
	pcm := &PCM{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
	}
	for ch := range pcm.Channels {
		pcm.Channels[ch] = make([]float32, samples)
		for i := range pcm.Channels[ch] {
			pcm.Channels[ch][i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate)))
		}
	}
	return pcm
}
