// Package testutil provides shared mocks for the submission flow, history
// store and transcription provider.
package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/nocdn/transcriptions-ssr/internal/app/model"
)

// MockHistoryDAO is an in-memory HistoryDAO with configurable per-method
// errors and call tracking.
type MockHistoryDAO struct {
	mu sync.Mutex

	records []model.Transcription
	nextID  int64

	// ErrorMap maps a method name to the error it should return.
	ErrorMap map[string]error

	AppendCalls int
	ListCalls   int
	DeleteCalls []int64
}

// NewMockHistoryDAO creates an empty mock store.
func NewMockHistoryDAO() *MockHistoryDAO {
	return &MockHistoryDAO{nextID: 1, ErrorMap: make(map[string]error)}
}

func (m *MockHistoryDAO) Close() error { return nil }

func (m *MockHistoryDAO) Append(source, text string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls++
	if err := m.ErrorMap["Append"]; err != nil {
		return 0, err
	}
	id := m.nextID
	m.nextID++
	m.records = append([]model.Transcription{{
		ID:            id,
		Source:        source,
		Transcription: text,
	}}, m.records...)
	return id, nil
}

func (m *MockHistoryDAO) List(limit int) ([]model.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if err := m.ErrorMap["List"]; err != nil {
		return nil, err
	}
	if limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]model.Transcription, limit)
	copy(out, m.records[:limit])
	return out, nil
}

func (m *MockHistoryDAO) DeleteByID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if err := m.ErrorMap["DeleteByID"]; err != nil {
		return err
	}
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			break
		}
	}
	return nil
}

// Records returns a copy of the stored records, newest first.
func (m *MockHistoryDAO) Records() []model.Transcription {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Transcription, len(m.records))
	copy(out, m.records)
	return out
}

// Seed inserts a record directly, bypassing call tracking.
func (m *MockHistoryDAO) Seed(id int64, source, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]model.Transcription{{ID: id, Source: source, Transcription: text}}, m.records...)
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

// MockTranscriber returns a fixed text or error and records what it was
// called with.
type MockTranscriber struct {
	mu sync.Mutex

	Text string
	Err  error

	Calls     int
	Filenames []string
	Payloads  [][]byte
}

func (m *MockTranscriber) Transcribe(_ context.Context, audio io.Reader, filename string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Filenames = append(m.Filenames, filename)
	payload, _ := io.ReadAll(audio)
	m.Payloads = append(m.Payloads, payload)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockClipboard records clipboard writes.
type MockClipboard struct {
	mu     sync.Mutex
	Err    error
	writes []string
}

func (m *MockClipboard) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.writes = append(m.writes, text)
	return nil
}

// Current returns the last written text, mirroring last-write-wins clipboard
// semantics.
func (m *MockClipboard) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return ""
	}
	return m.writes[len(m.writes)-1]
}

// Writes returns every write in order.
func (m *MockClipboard) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}
