package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = openai.Whisper1
)

// Recognizer implements ports.SpeechRecognizer against an OpenAI-compatible
// /audio/transcriptions endpoint.
type Recognizer struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewRecognizer creates a recognizer. Empty baseURL and model use the OpenAI defaults.
func NewRecognizer(apiKey, baseURL, model string) *Recognizer {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")

	return &Recognizer{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (r *Recognizer) Name() string {
	return "openai"
}

func (r *Recognizer) Recognize(ctx context.Context, audioPath string, opts ports.RecognizeOpts) (*domain.Transcript, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("%w: set openai.api_key or OPENAI_API_KEY", domain.ErrMissingAPIKey)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, err
	}

	model := opts.Model
	if model == "" {
		model = r.model
	}

	req := openai.AudioRequest{
		Model:    model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatJSON,
	}
	if opts.Language != "" && opts.Language != domain.AutoLanguage {
		req.Language = domain.BaseLanguage(opts.Language)
	}

	resp, err := r.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, recognitionError(err)
	}

	language := opts.Language
	if language == "" || language == domain.AutoLanguage {
		language = resp.Language
	}

	return &domain.Transcript{
		Text:         strings.TrimSpace(resp.Text),
		Language:     language,
		Engine:       r.Name(),
		Model:        model,
		RecognizedAt: time.Now(),
	}, nil
}

// recognitionError maps client errors onto ErrRecognitionFailed, keeping the
// API's own message when there is one
func recognitionError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrRecognitionFailed, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: HTTP %d: %v", domain.ErrRecognitionFailed, reqErr.HTTPStatusCode, reqErr.Err)
	}

	return fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
}

var _ ports.SpeechRecognizer = (*Recognizer)(nil)
