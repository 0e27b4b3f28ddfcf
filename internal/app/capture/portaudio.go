package capture

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/nocdn/transcriptions-ssr/internal/app/audio"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

const (
	defaultSampleRate = 16000
	defaultChannels   = 1
	framesPerChunk    = 1024
)

// PortAudioSource opens the default system input device through PortAudio and
// delivers raw interleaved float32 chunks.
type PortAudioSource struct {
	SampleRate int
	Channels   int
}

// NewPortAudioSource creates a source with mono 16 kHz defaults, the layout
// speech models expect.
func NewPortAudioSource() *PortAudioSource {
	return &PortAudioSource{SampleRate: defaultSampleRate, Channels: defaultChannels}
}

// Open initializes PortAudio and starts the default input stream.
func (p *PortAudioSource) Open(ctx context.Context) (Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDevice.Error())
	}

	buffer := make([]float32, framesPerChunk*p.Channels)
	stream, err := portaudio.OpenDefaultStream(p.Channels, 0, float64(p.SampleRate), framesPerChunk, buffer)
	if err != nil {
		_ = portaudio.Terminate()
		if errors.Is(err, portaudio.DeviceUnavailable) {
			return nil, apperrors.Wrap(err, apperrors.ErrPermission.Error())
		}
		return nil, apperrors.Wrap(err, apperrors.ErrDevice.Error())
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, apperrors.Wrap(err, apperrors.ErrDevice.Error())
	}

	ps := &portAudioStream{
		stream: stream,
		buffer: buffer,
		format: audio.RawPCMFormat(p.SampleRate, p.Channels),
		chunks: make(chan []byte, 8),
		stop:   make(chan struct{}),
	}
	go ps.readLoop(ctx)
	return ps, nil
}

type portAudioStream struct {
	stream *portaudio.Stream
	buffer []float32
	format audio.Format
	chunks chan []byte

	stopOnce sync.Once
	stop     chan struct{}
}

func (s *portAudioStream) Chunks() <-chan []byte { return s.chunks }

func (s *portAudioStream) Format() audio.Format { return s.format }

func (s *portAudioStream) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stop)
		err = s.stream.Stop()
	})
	return err
}

func (s *portAudioStream) readLoop(ctx context.Context) {
	defer func() {
		close(s.chunks)
		_ = s.stream.Close()
		_ = portaudio.Terminate()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		default:
		}

		if err := s.stream.Read(); err != nil {
			return
		}
		chunk := make([]byte, len(s.buffer)*4)
		for i, sample := range s.buffer {
			binary.LittleEndian.PutUint32(chunk[i*4:], math.Float32bits(sample))
		}
		select {
		case s.chunks <- chunk:
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}
