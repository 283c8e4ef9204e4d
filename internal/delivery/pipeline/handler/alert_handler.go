// Package handler contains the HTTP handlers for the transcription/alert
// pipeline.
package handler

import (
	"log/slog"
	"net/http"

	domainerrors "shield/internal/domain/errors"
	"shield/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AlertHandler holds dependencies for the pipeline handlers.
type AlertHandler struct {
	uc     usecase.AlertUsecase
	logger *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler, injected by Fx.
func NewAlertHandler(uc usecase.AlertUsecase, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, logger: logger}
}

type transcribeRequest struct {
	Audio    string `json:"audio" validate:"required"`
	Format   string `json:"format"`
	Location string `json:"location"`
}

type transcribeResponse struct {
	Success  bool   `json:"success"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type generateAlertRequest struct {
	Transcription string `json:"transcription" validate:"required"`
	Location      string `json:"location"`
}

type generateAlertResponse struct {
	Success               bool   `json:"success"`
	AlertMessage          string `json:"alert_message"`
	OriginalTranscription string `json:"original_transcription"`
	Timestamp             string `json:"timestamp"`
}

type pipelineResponse struct {
	Success       bool   `json:"success"`
	Transcription string `json:"transcription"`
	Language      string `json:"language"`
	AlertMessage  string `json:"alert_message"`
	Timestamp     string `json:"timestamp"`
}

type reloadModelRequest struct {
	ModelSize string `json:"model_size" validate:"required"`
}

// Transcribe decodes the posted audio and returns the transcript.
func (h *AlertHandler) Transcribe(c echo.Context) error {
	var req transcribeRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid audio input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Transcribe(c.Request().Context(), usecase.TranscribeInput{
		Audio:  req.Audio,
		Format: req.Format,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, transcribeResponse{
		Success:  true,
		Text:     output.Text,
		Language: output.Language,
	})
}

// GenerateAlert turns a transcript into an alert message.
func (h *AlertHandler) GenerateAlert(c echo.Context) error {
	var req generateAlertRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid transcription input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.GenerateAlert(c.Request().Context(), usecase.GenerateAlertInput{
		Transcription: req.Transcription,
		Location:      req.Location,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, generateAlertResponse{
		Success:               true,
		AlertMessage:          output.Message,
		OriginalTranscription: req.Transcription,
		Timestamp:             output.Timestamp,
	})
}

// TranscribeAndAlert runs the full audio-to-alert pipeline.
func (h *AlertHandler) TranscribeAndAlert(c echo.Context) error {
	var req transcribeRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid audio input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.TranscribeAndAlert(c.Request().Context(), usecase.TranscribeInput{
		Audio:  req.Audio,
		Format: req.Format,
	}, req.Location)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, pipelineResponse{
		Success:       true,
		Transcription: output.Transcription,
		Language:      output.Language,
		AlertMessage:  output.AlertMessage,
		Timestamp:     output.Timestamp,
	})
}

// Health reports the loaded model size.
func (h *AlertHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":        "healthy",
		"whisper_model": h.uc.ModelSize(),
	})
}

// ReloadModel switches the active speech model size.
func (h *AlertHandler) ReloadModel(c echo.Context) error {
	var req reloadModelRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid model input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ReloadModel(req.ModelSize); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":        "reloaded",
		"whisper_model": req.ModelSize,
	})
}
