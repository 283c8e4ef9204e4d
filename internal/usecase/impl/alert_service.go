package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"time"

	deliverycontext "shield/internal/delivery/context"
	domainerrors "shield/internal/domain/errors"
	"shield/internal/domain/service"
	"shield/internal/usecase"

	"go.uber.org/fx"
)

const (
	// minAudioBytes guards against empty or corrupt recordings.
	minAudioBytes = 100

	alertTimestampLayout = "2006-01-02 03:04:05 PM"
)

// alertService implements the AlertUsecase interface.
type alertService struct {
	transcriber service.Transcriber
	generator   service.AlertGenerator
	logger      *slog.Logger
	now         func() time.Time
}

// AlertServiceParams holds dependencies for alertService, injected by Fx.
type AlertServiceParams struct {
	fx.In

	Transcriber service.Transcriber
	Generator   service.AlertGenerator
	Logger      *slog.Logger
}

// NewAlertService is the constructor for alertService.
func NewAlertService(params AlertServiceParams) usecase.AlertUsecase {
	return &alertService{
		transcriber: params.Transcriber,
		generator:   params.Generator,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *alertService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Transcribe decodes the audio payload into a scoped temporary file and runs
// it through the speech model. The file is removed on every exit path.
func (srv *alertService) Transcribe(ctx context.Context, input usecase.TranscribeInput) (*usecase.TranscribeOutput, error) {
	path, err := srv.writeTempAudio(input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(path) }()

	result, err := srv.transcriber.Transcribe(ctx, path)
	if err != nil {
		srv.log(ctx).Error("Transcription failed", slog.Any("error", err))

		return nil, domainerrors.ErrTranscriptionFailed.WithDetails(err.Error())
	}

	srv.log(ctx).Info("Transcription completed", slog.String("language", result.Language))

	return &usecase.TranscribeOutput{Text: result.Text, Language: result.Language}, nil
}

// GenerateAlert turns a transcript into a human-readable alert message with a
// formatted timestamp appended.
func (srv *alertService) GenerateAlert(ctx context.Context, input usecase.GenerateAlertInput) (*usecase.AlertOutput, error) {
	if input.Transcription == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("transcription is required")
	}

	prompt := buildEmergencyPrompt(input.Transcription, input.Location)

	message, err := srv.generator.Generate(ctx, prompt)
	if err != nil {
		srv.log(ctx).Error("Alert generation failed", slog.Any("error", err))

		return nil, domainerrors.ErrAlertGenerationFailed.WithDetails(err.Error())
	}

	timestamp := srv.now().Format(alertTimestampLayout)

	return &usecase.AlertOutput{
		Message:   fmt.Sprintf("%s\n\n⏰ Time sent: %s", message, timestamp),
		Timestamp: timestamp,
	}, nil
}

// TranscribeAndAlert runs the full audio-to-alert pipeline.
func (srv *alertService) TranscribeAndAlert(ctx context.Context, audio usecase.TranscribeInput, location string) (*usecase.PipelineOutput, error) {
	transcript, err := srv.Transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}

	alert, err := srv.GenerateAlert(ctx, usecase.GenerateAlertInput{
		Transcription: transcript.Text,
		Location:      location,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.PipelineOutput{
		Transcription: transcript.Text,
		Language:      transcript.Language,
		AlertMessage:  alert.Message,
		Timestamp:     alert.Timestamp,
	}, nil
}

// ReloadModel switches the active speech model size.
func (srv *alertService) ReloadModel(size string) error {
	return srv.transcriber.ReloadModel(size)
}

// ModelSize returns the active speech model size.
func (srv *alertService) ModelSize() string {
	return srv.transcriber.Model()
}

// writeTempAudio decodes the base64 payload and persists it to a temporary
// file named after the reported container format.
func (srv *alertService) writeTempAudio(input usecase.TranscribeInput) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(input.Audio)
	if err != nil {
		return "", domainerrors.ErrAudioDecodeFailed
	}
	if len(raw) < minAudioBytes {
		return "", domainerrors.ErrAudioTooSmall
	}

	ext := "wav"
	if input.Format == "webm" || input.Format == "" {
		ext = "webm"
	}

	file, err := os.CreateTemp("", "audio-*."+ext)
	if err != nil {
		return "", domainerrors.ErrInternalError.WithDetails("failed to create temp file")
	}

	if _, err := file.Write(raw); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())

		return "", domainerrors.ErrInternalError.WithDetails("failed to write temp file")
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())

		return "", domainerrors.ErrInternalError.WithDetails("failed to write temp file")
	}

	return file.Name(), nil
}

// buildEmergencyPrompt embeds the transcript and optional location into the
// instruction the generative model answers with an alert message.
func buildEmergencyPrompt(transcription, location string) string {
	locationText := ""
	if location != "" {
		locationText = "\nLocation data: " + location
	}

	return fmt.Sprintf(`You are an emergency message processor. A person in danger has sent a voice message that was transcribed (may contain transcription errors).

Your task: Generate a detailed, clear emergency alert message that their emergency contacts will receive via SMS. Include ALL relevant information.

Voice transcription: "%s"%s

Create an emergency alert message that includes:
- 🚨 Clear statement that this is an emergency with emoji
- What is happening (situation/threat)
- Exact location details if mentioned
- Any descriptions of people/vehicles if mentioned
- Current actions the person is taking
- Sense of urgency and recommended actions for contacts

Make the message detailed and comprehensive. Don't worry about length - include all important details.

Emergency Alert Message:`, transcription, locationText)
}
