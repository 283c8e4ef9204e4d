// Package speech contains the speech-to-text client used by the alert
// pipeline.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"shield/config"
	"shield/internal/domain/service"
	"shield/internal/errors"
)

const (
	defaultWhisperModel = "base"
	defaultFFmpegPath   = "ffmpeg"
	transcribeTimeout   = 2 * time.Minute
)

// validModelSizes are the sizes the transcription backend can load.
var validModelSizes = map[string]struct{}{
	"tiny":   {},
	"base":   {},
	"small":  {},
	"medium": {},
	"large":  {},
}

// whisperClient talks to an OpenAI-compatible transcription endpoint
// (POST /v1/audio/transcriptions, multipart form, verbose_json response).
type whisperClient struct {
	endpoint string
	ffmpeg   string
	client   *http.Client
	logger   *slog.Logger

	mu    sync.RWMutex
	model string
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// NewWhisperClient creates the transcription client from configuration.
func NewWhisperClient(cfg *config.Config, logger *slog.Logger) (service.Transcriber, error) {
	if cfg.Pipeline == nil || cfg.Pipeline.WhisperEndpoint == "" {
		return nil, errors.New("whisper endpoint must be configured")
	}

	model := cfg.Pipeline.WhisperModel
	if model == "" {
		model = defaultWhisperModel
	}
	if _, ok := validModelSizes[model]; !ok {
		return nil, errors.Errorf("invalid whisper model size: %s", model)
	}

	ffmpeg := cfg.Pipeline.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = defaultFFmpegPath
	}

	return &whisperClient{
		endpoint: cfg.Pipeline.WhisperEndpoint,
		ffmpeg:   ffmpeg,
		client:   &http.Client{Timeout: transcribeTimeout},
		logger:   logger,
		model:    model,
	}, nil
}

// Transcribe runs the audio file through the model. When the first pass fails
// or yields no text, the file is converted to 16 kHz mono PCM WAV with ffmpeg
// and transcribed once more.
func (c *whisperClient) Transcribe(ctx context.Context, path string) (*service.TranscriptResult, error) {
	result, err := c.transcribeOnce(ctx, path)
	if err == nil && result.Text != "" {
		return result, nil
	}
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "transcription failed, retrying after conversion",
			slog.String("error", err.Error()),
		)
	}

	converted, convErr := c.convertToWAV(ctx, path)
	if convErr != nil {
		if err != nil {
			return nil, err
		}

		return nil, errors.Wrap(convErr, "audio conversion failed")
	}
	defer func() { _ = os.Remove(converted) }()

	result, err = c.transcribeOnce(ctx, converted)
	if err != nil {
		return nil, err
	}
	if result.Text == "" {
		return nil, errors.New("transcription produced no text")
	}

	return result, nil
}

// ReloadModel switches the active model size.
func (c *whisperClient) ReloadModel(size string) error {
	if _, ok := validModelSizes[size]; !ok {
		return errors.Errorf("invalid model size: %s", size)
	}

	c.mu.Lock()
	c.model = size
	c.mu.Unlock()

	return nil
}

// Model returns the active model size.
func (c *whisperClient) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.model
}

func (c *whisperClient) transcribeOnce(ctx context.Context, path string) (*service.TranscriptResult, error) {
	audio, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open audio file")
	}
	defer func() { _ = audio.Close() }()

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build multipart form")
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, errors.Wrap(err, "failed to read audio file")
	}
	if err := writer.WriteField("model", c.Model()); err != nil {
		return nil, errors.Wrap(err, "failed to build multipart form")
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, errors.Wrap(err, "failed to build multipart form")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to build multipart form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &form)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transcription request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "transcription request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, errors.Errorf("transcription endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode transcription response")
	}

	language := parsed.Language
	if language == "" {
		language = "unknown"
	}

	return &service.TranscriptResult{
		Text:     strings.TrimSpace(parsed.Text),
		Language: language,
	}, nil
}

// convertToWAV rewrites the audio as 16 kHz mono PCM WAV, the format the
// model accepts when the original container is unreadable.
func (c *whisperClient) convertToWAV(ctx context.Context, path string) (string, error) {
	out := strings.TrimSuffix(path, filepath.Ext(path)) + "_converted.wav"

	cmd := exec.CommandContext(ctx, c.ffmpeg,
		"-y",
		"-i", path,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", errors.Wrapf(err, "ffmpeg failed: %s", string(output))
	}

	return out, nil
}
