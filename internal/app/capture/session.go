// Package capture owns the microphone stream lifecycle: one active session at
// a time, ordered chunk accumulation while recording, and unconditional
// resource release once a recording is finalized.
package capture

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nocdn/transcriptions-ssr/internal/app/audio"
	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

// Stream is an open microphone stream delivering encoded chunks in order.
// Close stops the underlying device tracks; the chunk channel must be closed
// once the final chunk has been delivered.
type Stream interface {
	Chunks() <-chan []byte
	Format() audio.Format
	Close() error
}

// Source acquires a microphone stream. Open returns ErrPermission when device
// access is denied and ErrDevice on hardware or driver faults; in both cases
// no stream is left open.
type Source interface {
	Open(ctx context.Context) (Stream, error)
}

// Recording is a finalized capture payload tagged with its negotiated format.
type Recording struct {
	Data   []byte
	Format audio.Format
}

// Session coordinates a single capture at a time. The stream and chunk buffer
// are owned exclusively by the session and are released on every exit path.
type Session struct {
	source Source
	logger *slog.Logger

	mu      sync.Mutex
	stream  Stream
	chunks  [][]byte
	active  bool
	drained chan struct{}
}

// NewSession creates a session over the given source.
func NewSession(source Source, logger *slog.Logger) *Session {
	return &Session{source: source, logger: logger}
}

// Active reports whether a recording is in progress.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start acquires the microphone and begins accumulating chunks. Starting while
// a session is already active is rejected; a failed acquisition leaves no
// active session behind.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return apperrors.New("capture already in progress")
	}
	// Reserve the session before releasing the lock so a concurrent Start
	// cannot open a second device stream.
	s.active = true
	s.mu.Unlock()

	stream, err := s.source.Open(ctx)
	if err != nil {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.stream = stream
	s.chunks = nil
	s.drained = make(chan struct{})
	drained := s.drained
	s.mu.Unlock()

	go func() {
		defer close(drained)
		for chunk := range stream.Chunks() {
			if len(chunk) == 0 {
				continue
			}
			s.mu.Lock()
			s.chunks = append(s.chunks, chunk)
			s.mu.Unlock()
		}
	}()

	return nil
}

// Stop finalizes the active recording exactly once. Stopping an inactive
// session is a no-op. The device stream is released and the chunk buffer
// cleared before Stop returns, whether or not assembly succeeds.
func (s *Session) Stop() (*Recording, error) {
	s.mu.Lock()
	if !s.active || s.stream == nil {
		s.mu.Unlock()
		return nil, nil
	}
	s.active = false
	stream := s.stream
	drained := s.drained
	s.mu.Unlock()

	defer s.teardown()

	if err := stream.Close(); err != nil {
		s.logger.Warn("closing capture stream failed", "error", err)
	}
	<-drained

	s.mu.Lock()
	total := 0
	for _, chunk := range s.chunks {
		total += len(chunk)
	}
	data := make([]byte, 0, total)
	for _, chunk := range s.chunks {
		data = append(data, chunk...)
	}
	s.mu.Unlock()

	return &Recording{Data: data, Format: stream.Format()}, nil
}

func (s *Session) teardown() {
	s.mu.Lock()
	s.stream = nil
	s.chunks = nil
	s.drained = nil
	s.mu.Unlock()
}
