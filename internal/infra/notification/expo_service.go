// Package notification contains the push-delivery implementations.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"shield/config"
	"shield/internal/domain/service"
)

const (
	defaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"
	defaultExpoTimeout  = 10 * time.Second
	defaultSound        = "default"
)

type expoService struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

type expoPushMessage struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type expoPushResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// NewExpoService creates a push sender that delivers through the Expo push
// gateway.
func NewExpoService(cfg *config.Config, logger *slog.Logger) service.PushSender {
	endpoint := defaultExpoEndpoint
	timeout := defaultExpoTimeout
	if cfg != nil && cfg.Expo != nil {
		if cfg.Expo.Endpoint != "" {
			endpoint = cfg.Expo.Endpoint
		}
		if cfg.Expo.Timeout > 0 {
			timeout = cfg.Expo.Timeout
		}
	}

	return &expoService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Send delivers one notification to one device token. Delivery succeeds only
// when the gateway answers 200 and reports per-receipt status "ok"; every
// other outcome, transport failures included, reads as false.
func (s *expoService) Send(ctx context.Context, token, title, body string) bool {
	payload, err := json.Marshal(expoPushMessage{
		To:    token,
		Sound: defaultSound,
		Title: title,
		Body:  body,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "expo push request failed",
			slog.String("error", err.Error()),
		)

		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "expo push rejected",
			slog.Int("status", resp.StatusCode),
		)

		return false
	}

	var parsed expoPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false
	}

	if len(parsed.Data) == 0 || parsed.Data[0].Status != "ok" {
		if len(parsed.Data) > 0 {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "expo push ticket not ok",
				slog.String("status", parsed.Data[0].Status),
				slog.String("message", parsed.Data[0].Message),
			)
		}

		return false
	}

	return true
}
