// Package voxtral implements transcription against the Mistral audio
// transcriptions endpoint.
package voxtral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	apperrors "github.com/nocdn/transcriptions-ssr/internal/app/errors"
)

const (
	defaultBaseURL = "https://api.mistral.ai/v1"
	defaultModel   = "voxtral-mini-latest"
)

// Config represents configuration for the Mistral transcription client
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Timeout int    `yaml:"timeout_sec"`
}

// Client calls the Mistral audio transcriptions API.
type Client struct {
	config Config
	client *http.Client
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// NewClient creates a Mistral transcription client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 120
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.Timeout) * time.Second},
	}
}

// Transcribe submits the payload as a multipart form with the fixed model
// identifier and a bearer token. Status 429 maps to ErrRateLimit, 413 to
// ErrSizeLimit; any other non-success status or a response without usable
// text maps to ErrTranscription.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if c.config.APIKey == "" {
		return "", apperrors.New("API key is required")
	}

	req, err := c.buildRequest(ctx, audio, filename)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrTranscription.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperrors.Wrapf(apperrors.ErrRateLimit, "mistral returned status %d", resp.StatusCode)
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return "", apperrors.Wrapf(apperrors.ErrSizeLimit, "mistral returned status %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperrors.Wrapf(apperrors.ErrTranscription, "mistral returned status %d: %s", resp.StatusCode, body)
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrTranscription, "response body unreadable: %v", err)
	}
	if parsed.Text == "" {
		return "", apperrors.Wrap(apperrors.ErrTranscription, "no transcription in response")
	}
	return parsed.Text, nil
}

func (c *Client) buildRequest(ctx context.Context, audio io.Reader, filename string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model", c.config.Model); err != nil {
		return nil, fmt.Errorf("failed to write model field: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to copy audio payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}
