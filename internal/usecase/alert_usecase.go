package usecase

import "context"

// TranscribeInput carries a base64-encoded audio clip.
type TranscribeInput struct {
	Audio  string
	Format string
}

// TranscribeOutput is the transcription result.
type TranscribeOutput struct {
	Text     string
	Language string
}

// GenerateAlertInput carries a transcript plus an optional location string.
type GenerateAlertInput struct {
	Transcription string
	Location      string
}

// AlertOutput is a generated alert message with its formatted timestamp.
type AlertOutput struct {
	Message   string
	Timestamp string
}

// PipelineOutput is the combined transcribe-then-alert result.
type PipelineOutput struct {
	Transcription string
	Language      string
	AlertMessage  string
	Timestamp     string
}

// AlertUsecase defines the interface for the transcription/alert pipeline.
type AlertUsecase interface {
	// Transcribe decodes the audio payload and runs it through the speech
	// model.
	Transcribe(ctx context.Context, input TranscribeInput) (*TranscribeOutput, error)

	// GenerateAlert turns a transcript into a human-readable alert message.
	GenerateAlert(ctx context.Context, input GenerateAlertInput) (*AlertOutput, error)

	// TranscribeAndAlert runs the full audio-to-alert pipeline.
	TranscribeAndAlert(ctx context.Context, audio TranscribeInput, location string) (*PipelineOutput, error)

	// ReloadModel switches the active speech model size.
	ReloadModel(size string) error

	// ModelSize returns the active speech model size.
	ModelSize() string
}
