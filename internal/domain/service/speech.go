package service

import "context"

// TranscriptResult is the outcome of a speech-to-text invocation.
type TranscriptResult struct {
	Text     string // The transcribed text, whitespace-trimmed.
	Language string // Detected language code, "unknown" when undetected.
}

// Transcriber abstracts the speech-to-text model invocation.
type Transcriber interface {
	// Transcribe runs the audio file at path through the model.
	Transcribe(ctx context.Context, path string) (*TranscriptResult, error)

	// ReloadModel switches the active model size (tiny, base, small,
	// medium, large).
	ReloadModel(size string) error

	// Model returns the active model size.
	Model() string
}

// AlertGenerator abstracts the generative-language model invocation.
type AlertGenerator interface {
	// Generate produces text for the given prompt. Rate-limit failures are
	// retried internally under bounded exponential backoff.
	Generate(ctx context.Context, prompt string) (string, error)
}
