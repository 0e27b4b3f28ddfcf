package voxtral

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

func newTestClient(url string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: url})
}

func TestClient_Transcribe_Success(t *testing.T) {
	var gotModel, gotFilename, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "hello world"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"), "recording-1.wav")

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "voxtral-mini-latest", gotModel)
	assert.Equal(t, "recording-1.wav", gotFilename)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClient_Transcribe_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate_limited", status: http.StatusTooManyRequests, body: "slow down", wantErr: apperrors.ErrRateLimit},
		{name: "payload_too_large", status: http.StatusRequestEntityTooLarge, body: "too big", wantErr: apperrors.ErrSizeLimit},
		{name: "server_error", status: http.StatusInternalServerError, body: "boom", wantErr: apperrors.ErrTranscription},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "bad key", wantErr: apperrors.ErrTranscription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestClient_Transcribe_EmptyTextIsFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty_text_field", body: `{"text": ""}`},
		{name: "missing_text_field", body: `{"language": "en"}`},
		{name: "malformed_json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrTranscription))
		})
	}
}

func TestClient_Transcribe_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(server.URL)
	_, err := client.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTranscription))
}

func TestClient_Transcribe_RequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Transcribe(context.Background(), strings.NewReader("audio"), "a.wav")
	assert.Error(t, err)
}
