package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

// FFmpegDecoder decodes compressed audio by shelling out to ffmpeg/ffprobe.
// Both binaries must be on PATH.
type FFmpegDecoder struct{}

// NewFFmpegDecoder creates an ffmpeg-backed decoder.
func NewFFmpegDecoder() *FFmpegDecoder {
	return &FFmpegDecoder{}
}

type probeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Channels   int    `json:"channels"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

// Decode writes the payload to a temp file, probes its stream layout and reads
// back raw 32-bit float samples. Any probe or decode failure maps to ErrDecode.
func (d *FFmpegDecoder) Decode(ctx context.Context, data []byte, format Format) (*PCM, error) {
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("decode-%s.%s", uuid.New().String(), format.FallbackExt()))
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return nil, apperrors.Wrap(err, "failed to stage payload for decoding")
	}
	defer os.Remove(tmpPath)

	channels, sampleRate, err := d.probe(ctx, tmpPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDecode.Error())
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", tmpPath,
		"-vn",
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"pipe:1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, apperrors.Wrapf(err, "%s: ffmpeg: %s", apperrors.ErrDecode.Error(), stderr.String())
	}

	return deinterleave(stdout.Bytes(), channels, sampleRate)
}

func (d *FFmpegDecoder) probe(ctx context.Context, path string) (channels, sampleRate int, err error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams", path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, 0, fmt.Errorf("ffprobe output unreadable: %w", err)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		rate, err := strconv.Atoi(stream.SampleRate)
		if err != nil || rate <= 0 || stream.Channels <= 0 {
			continue
		}
		return stream.Channels, rate, nil
	}
	return 0, 0, fmt.Errorf("no decodable audio stream found")
}

func deinterleave(raw []byte, channels, sampleRate int) (*PCM, error) {
	frameSize := channels * 4
	if len(raw) == 0 || len(raw)%frameSize != 0 {
		return nil, apperrors.Wrap(fmt.Errorf("got %d bytes for %d channels", len(raw), channels), apperrors.ErrDecode.Error())
	}

	numSamples := len(raw) / frameSize
	pcm := &PCM{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
	}
	for ch := range pcm.Channels {
		pcm.Channels[ch] = make([]float32, numSamples)
	}
	for i := 0; i < numSamples; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 4
			bits := binary.LittleEndian.Uint32(raw[off : off+4])
			pcm.Channels[ch][i] = math.Float32frombits(bits)
		}
	}
	return pcm, nil
}
