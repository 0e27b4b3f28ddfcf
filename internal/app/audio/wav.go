package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// PCM holds decoded audio as per-channel float samples in [-1.0, 1.0].
type PCM struct {
	Channels   [][]float32
	SampleRate int
}

// NumChannels returns the channel count.
func (p *PCM) NumChannels() int { return len(p.Channels) }

// NumSamples returns the per-channel sample count.
func (p *PCM) NumSamples() int {
	if len(p.Channels) == 0 {
		return 0
	}
	return len(p.Channels[0])
}

// WAVHeader represents the 44-byte header of a PCM WAV file
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

const wavHeaderSize = 44

// EncodeWAV encodes decoded float samples into a 16-bit linear PCM WAV file.
// The output is deterministic for identical inputs: a fixed 44-byte header
// followed by interleaved frames, each sample clamped to [-1, 1] and scaled by
// 32768 for negative values and 32767 otherwise, written little-endian.
func EncodeWAV(pcm *PCM) ([]byte, error) {
	if pcm == nil || pcm.NumChannels() == 0 {
		return nil, fmt.Errorf("cannot encode empty audio buffer")
	}
	if pcm.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", pcm.SampleRate)
	}
	numSamples := pcm.NumSamples()
	for i, ch := range pcm.Channels {
		if len(ch) != numSamples {
			return nil, fmt.Errorf("channel %d has %d samples, want %d", i, len(ch), numSamples)
		}
	}

	numChannels := uint16(pcm.NumChannels())
	bitsPerSample := uint16(16)
	dataSize := uint32(numSamples) * uint32(numChannels) * 2

	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   numChannels,
		SampleRate:    uint32(pcm.SampleRate),
		ByteRate:      uint32(pcm.SampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+int(dataSize)))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	// Interleave channel-major within each frame.
	frame := make([]byte, 2)
	for i := 0; i < numSamples; i++ {
		for ch := 0; ch < int(numChannels); ch++ {
			s := pcm.Channels[ch][i]
			if s < -1 {
				s = -1
			} else if s > 1 {
				s = 1
			}
			var v int16
			if s < 0 {
				v = int16(s * 32768)
			} else {
				v = int16(s * 32767)
			}
			binary.LittleEndian.PutUint16(frame, uint16(v))
			buf.Write(frame)
		}
	}

	return buf.Bytes(), nil
}

// DecodeWAV decodes a 16-bit linear PCM WAV file back to float samples.
func DecodeWAV(data []byte) (*PCM, error) {
	if len(data) < wavHeaderSize {
		return nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", wavHeaderSize, len(data))
	}

	buf := bytes.NewReader(data)
	var header WAVHeader
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(header.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(header.Subchunk2ID[:]) != "data" {
		return nil, fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if header.AudioFormat != 1 {
		return nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", header.AudioFormat)
	}
	if header.BitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (only 16-bit is supported)", header.BitsPerSample)
	}
	if header.NumChannels == 0 {
		return nil, fmt.Errorf("invalid channel count: 0")
	}

	numChannels := int(header.NumChannels)
	available := len(data) - wavHeaderSize
	if int(header.Subchunk2Size) > available {
		return nil, fmt.Errorf("truncated WAV data: header declares %d data bytes, got %d", header.Subchunk2Size, available)
	}
	numSamples := int(header.Subchunk2Size) / (2 * numChannels)

	pcm := &PCM{
		Channels:   make([][]float32, numChannels),
		SampleRate: int(header.SampleRate),
	}
	for ch := range pcm.Channels {
		pcm.Channels[ch] = make([]float32, numSamples)
	}

	raw := data[wavHeaderSize:]
	for i := 0; i < numSamples; i++ {
		for ch := 0; ch < numChannels; ch++ {
			off := (i*numChannels + ch) * 2
			v := int16(binary.LittleEndian.Uint16(raw[off : off+2]))
			if v < 0 {
				pcm.Channels[ch][i] = float32(v) / 32768
			} else {
				pcm.Channels[ch][i] = float32(v) / 32767
			}
		}
	}

	return pcm, nil
}

// ValidateWAV checks the fixed header landmarks without decoding sample data.
func ValidateWAV(data []byte) error {
	if len(data) < wavHeaderSize {
		return fmt.Errorf("WAV data too short: need at least %d bytes, got %d", wavHeaderSize, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(data[36:40]) != "data" {
		return fmt.Errorf("invalid WAV file: missing data chunk")
	}
	return nil
}
