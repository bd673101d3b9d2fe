package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/adapters/whisper"
	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

func TestNewRecognizer(t *testing.T) {
	cfg := config.DefaultConfig()
	transcriber := whisper.NewTranscriber(t.TempDir(), "")

	tests := []struct {
		engine   string
		wantName string
		wantErr  error
	}{
		{config.EngineWhisper, "whisper", nil},
		{config.EngineOpenAI, "openai", nil},
		{"google", "", domain.ErrUnknownEngine},
		{"", "", domain.ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			r, err := newRecognizer(tt.engine, cfg, transcriber)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("newRecognizer(%q) error = %v, want %v", tt.engine, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("newRecognizer(%q) error = %v", tt.engine, err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("Name() = %s, want %s", r.Name(), tt.wantName)
			}
		})
	}
}

func TestLogOptions(t *testing.T) {
	defer func() { quietFlag, verboseFlag = false, false }()

	cfg := config.DefaultConfig()

	quietFlag, verboseFlag = false, false
	opts := logOptions(cfg)
	if opts.Level != "info" || opts.Format != "console" || opts.Quiet {
		t.Errorf("logOptions() = %+v, want info/console/not quiet", opts)
	}

	verboseFlag = true
	if opts := logOptions(cfg); opts.Level != "debug" {
		t.Errorf("logOptions() level = %s with --verbose, want debug", opts.Level)
	}

	quietFlag = true
	if opts := logOptions(cfg); !opts.Quiet {
		t.Error("logOptions() should be quiet with --quiet")
	}
}

func TestOpenAIEngine_SendsOpenAIModel(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "hello"}`))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.BaseURL = srv.URL

	recognizer, err := newRecognizer(config.EngineOpenAI, cfg, whisper.NewTranscriber(t.TempDir(), ""))
	if err != nil {
		t.Fatalf("newRecognizer() error = %v", err)
	}

	cmd := NewRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	req := buildRequest(cmd.Flags(), cfg, recognizer.Name(), "v.mp4")

	audio := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("failed to write audio: %v", err)
	}

	if _, err := recognizer.Recognize(context.Background(), audio, ports.RecognizeOpts{Model: req.Model, Language: req.Language}); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if gotModel != cfg.OpenAI.Model {
		t.Errorf("model sent = %q, want %q", gotModel, cfg.OpenAI.Model)
	}
}

type fakeExtractor struct {
	available bool
}

func (f *fakeExtractor) Extract(ctx context.Context, videoPath, destDir string) (string, error) {
	return filepath.Join(destDir, "audio.wav"), nil
}
func (f *fakeExtractor) IsAvailable() bool    { return f.available }
func (f *fakeExtractor) BinaryPath() string   { return "" }
func (f *fakeExtractor) Instructions() string { return "install ffmpeg" }

type fakeRecognizer struct {
	name string
}

func (f *fakeRecognizer) Recognize(ctx context.Context, audioPath string, opts ports.RecognizeOpts) (*domain.Transcript, error) {
	return &domain.Transcript{Text: "hello"}, nil
}
func (f *fakeRecognizer) Name() string { return f.name }

type fakeModels struct {
	available  bool
	downloaded map[string]bool
	fetched    []string
}

func (f *fakeModels) IsAvailable() bool    { return f.available }
func (f *fakeModels) BinaryPath() string   { return "/usr/local/bin/whisper-cli" }
func (f *fakeModels) Instructions() string { return "install whisper.cpp" }
func (f *fakeModels) AvailableModels() []ports.Model {
	return []ports.Model{
		{Name: "tiny", Downloaded: f.downloaded["tiny"]},
		{Name: "small", Downloaded: f.downloaded["small"]},
	}
}
func (f *fakeModels) IsModelDownloaded(model string) bool { return f.downloaded[model] }
func (f *fakeModels) DownloadModel(ctx context.Context, model string, progress func(downloaded, total int64)) error {
	f.fetched = append(f.fetched, model)
	f.downloaded[model] = true
	if progress != nil {
		progress(10, 10)
	}
	return nil
}
func (f *fakeModels) DeleteModel(model string) error {
	delete(f.downloaded, model)
	return nil
}

func testApp(engine string, extractor *fakeExtractor, models *fakeModels) *App {
	return &App{
		Config:     config.DefaultConfig(),
		Logger:     zap.NewNop(),
		Extractor:  extractor,
		Models:     models,
		Recognizer: &fakeRecognizer{name: engine},
	}
}

func TestEnsureDependencies(t *testing.T) {
	progress := tui.NewProgressDisplay(&bytes.Buffer{}, generateSteps(), false)

	t.Run("downloads missing model", func(t *testing.T) {
		models := &fakeModels{available: true, downloaded: map[string]bool{}}
		app := testApp(config.EngineWhisper, &fakeExtractor{available: true}, models)

		if err := ensureDependencies(context.Background(), app, "small", progress); err != nil {
			t.Fatalf("ensureDependencies() error = %v", err)
		}
		if len(models.fetched) != 1 || models.fetched[0] != "small" {
			t.Errorf("fetched = %v, want [small]", models.fetched)
		}
	})

	t.Run("missing ffmpeg", func(t *testing.T) {
		app := testApp(config.EngineWhisper, &fakeExtractor{}, &fakeModels{available: true, downloaded: map[string]bool{}})

		err := ensureDependencies(context.Background(), app, "small", progress)
		if !errors.Is(err, domain.ErrFFmpegNotFound) {
			t.Errorf("ensureDependencies() error = %v, want ErrFFmpegNotFound", err)
		}
	})

	t.Run("missing whisper binary", func(t *testing.T) {
		app := testApp(config.EngineWhisper, &fakeExtractor{available: true}, &fakeModels{downloaded: map[string]bool{}})

		err := ensureDependencies(context.Background(), app, "small", progress)
		if !errors.Is(err, domain.ErrWhisperNotFound) {
			t.Errorf("ensureDependencies() error = %v, want ErrWhisperNotFound", err)
		}
	})

	t.Run("openai skips whisper", func(t *testing.T) {
		models := &fakeModels{downloaded: map[string]bool{}}
		app := testApp(config.EngineOpenAI, &fakeExtractor{available: true}, models)

		if err := ensureDependencies(context.Background(), app, "whisper-1", progress); err != nil {
			t.Fatalf("ensureDependencies() error = %v", err)
		}
		if len(models.fetched) != 0 {
			t.Errorf("fetched = %v, want none", models.fetched)
		}
	})
}

func TestModelStatus(t *testing.T) {
	models := &fakeModels{downloaded: map[string]bool{"tiny": true}}
	app := testApp(config.EngineWhisper, &fakeExtractor{}, models)

	got := modelStatus(app)
	if got.Status != "default not downloaded" {
		t.Errorf("Status = %q, want default not downloaded", got.Status)
	}
	if got.Detail != "1/2 downloaded, default small" {
		t.Errorf("Detail = %q", got.Detail)
	}

	models.downloaded["small"] = true
	if got := modelStatus(app); got.Status != "ok" {
		t.Errorf("Status = %q, want ok", got.Status)
	}
}
