package ports

import (
	"context"

	"github.com/devbush/vid2srt/internal/domain"
)

// Model represents a downloadable speech recognition model
type Model struct {
	Name        string
	Size        int64 // bytes
	Description string
	Downloaded  bool
}

// RecognizeOpts configures speech recognition
type RecognizeOpts struct {
	Model    string
	Language string // BCP 47 code, e.g. "en-US"
}

// SpeechRecognizer converts an audio file into a flat transcript
type SpeechRecognizer interface {
	// Recognize transcribes the audio file
	Recognize(ctx context.Context, audioPath string, opts RecognizeOpts) (*domain.Transcript, error)

	// Name returns the engine name
	Name() string
}

// ModelManager handles a local recognizer binary and its stored models
type ModelManager interface {
	// IsAvailable checks if the recognizer binary is installed
	IsAvailable() bool

	// BinaryPath returns the path to the recognizer binary
	BinaryPath() string

	// Instructions explains how to install the recognizer binary
	Instructions() string

	// AvailableModels returns list of available models
	AvailableModels() []Model

	// IsModelDownloaded checks if a model is available locally
	IsModelDownloaded(model string) bool

	// DownloadModel downloads a model with progress callback
	DownloadModel(ctx context.Context, model string, progress func(downloaded, total int64)) error

	// DeleteModel removes a downloaded model
	DeleteModel(model string) error
}
