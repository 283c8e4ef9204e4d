// Package genai contains the generative-language client used to turn
// transcripts into alert messages.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"shield/config"
	"shield/internal/domain/service"
	"shield/internal/errors"
)

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultGeminiTimeout  = 30 * time.Second
	defaultMaxRetries     = 3

	retryInitialInterval = 2 * time.Second
)

// geminiClient calls the generateContent REST endpoint.
type geminiClient struct {
	endpoint   string
	apiKey     string
	model      string
	maxRetries int
	client     *http.Client
	logger     *slog.Logger
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates the generative-language client from configuration.
func NewGeminiClient(cfg *config.Config, logger *slog.Logger) (service.AlertGenerator, error) {
	if cfg.Pipeline == nil || cfg.Pipeline.Gemini == nil || cfg.Pipeline.Gemini.APIKey == "" {
		return nil, errors.New("gemini api key must be configured")
	}
	gemini := cfg.Pipeline.Gemini

	endpoint := gemini.Endpoint
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	model := gemini.Model
	if model == "" {
		model = defaultGeminiModel
	}
	maxRetries := gemini.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	timeout := gemini.Timeout
	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}

	return &geminiClient{
		endpoint:   endpoint,
		apiKey:     gemini.APIKey,
		model:      model,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Generate produces text for the prompt. Rate-limit responses are retried
// under exponential backoff; any other failure aborts immediately.
func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var result string

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	operation := func() error {
		text, err := c.generateOnce(ctx, prompt)
		if err != nil {
			if isRateLimited(err) {
				c.logger.LogAttrs(ctx, slog.LevelWarn, "gemini rate limited, backing off",
					slog.String("error", err.Error()),
				)

				return err
			}

			return backoff.Permanent(err)
		}

		result = text

		return nil
	}

	retries := uint64(c.maxRetries - 1)
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx)); err != nil {
		return "", err
	}

	return result, nil
}

func (c *geminiClient) generateOnce(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode generate request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to build generate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "generate request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, "failed to read generate response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("generate endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode generate response")
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generate response contained no candidates")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// isRateLimited reports whether the failure is a quota or rate-limit
// rejection worth retrying.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "returned 429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted")
}
