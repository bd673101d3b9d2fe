package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

// Model sizes in bytes (approximate)
var modelSizes = map[string]int64{
	"tiny":   75 * 1024 * 1024,
	"base":   140 * 1024 * 1024,
	"small":  462 * 1024 * 1024,
	"medium": 1500 * 1024 * 1024,
	"large":  3000 * 1024 * 1024,
}

// Transcriber implements ports.SpeechRecognizer and ports.ModelManager using whisper.cpp
type Transcriber struct {
	modelsDir    string
	binPath      string
	modelBaseURL string
}

// NewTranscriber creates a new Whisper transcriber. Empty arguments fall back
// to the default models directory and binary lookup.
func NewTranscriber(modelsDir, binPath string) *Transcriber {
	if modelsDir == "" {
		modelsDir = config.ModelsDir()
	}
	return &Transcriber{modelsDir: modelsDir, binPath: binPath}
}

const defaultModelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

func (t *Transcriber) modelURL(name string) string {
	base := t.modelBaseURL
	if base == "" {
		base = defaultModelBaseURL
	}
	return fmt.Sprintf("%s/ggml-%s.bin", strings.TrimSuffix(base, "/"), name)
}

func (t *Transcriber) modelPath(name string) string {
	return filepath.Join(t.modelsDir, fmt.Sprintf("ggml-%s.bin", name))
}

func (t *Transcriber) AvailableModels() []ports.Model {
	models := []ports.Model{
		{Name: "tiny", Size: modelSizes["tiny"], Description: "~75MB, basic accuracy, very fast"},
		{Name: "base", Size: modelSizes["base"], Description: "~140MB, good accuracy, fast"},
		{Name: "small", Size: modelSizes["small"], Description: "~462MB, better accuracy, moderate speed"},
		{Name: "medium", Size: modelSizes["medium"], Description: "~1.5GB, great accuracy, slower"},
		{Name: "large", Size: modelSizes["large"], Description: "~3GB, best accuracy, slow"},
	}

	for i := range models {
		models[i].Downloaded = t.IsModelDownloaded(models[i].Name)
	}

	return models
}

func (t *Transcriber) IsModelDownloaded(model string) bool {
	_, err := os.Stat(t.modelPath(model))
	return err == nil
}

// DownloadModel fetches a ggml model into the models directory. The file is
// written under a .part name and renamed once complete.
func (t *Transcriber) DownloadModel(ctx context.Context, model string, progress func(downloaded, total int64)) error {
	if _, ok := modelSizes[model]; !ok {
		return fmt.Errorf("%w: unknown model %s", domain.ErrModelNotFound, model)
	}

	if err := os.MkdirAll(t.modelsDir, 0755); err != nil {
		return err
	}

	// Concurrent runs share the models directory
	lock := flock.New(t.modelPath(model) + ".lock")
	if _, err := lock.TryLockContext(ctx, 250*time.Millisecond); err != nil {
		return fmt.Errorf("failed to lock model %s: %w", model, err)
	}
	defer lock.Unlock()

	if t.IsModelDownloaded(model) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.modelURL(model), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download model: HTTP %d", resp.StatusCode)
	}

	destPath := t.modelPath(model)
	partPath := destPath + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return err
	}

	pw := &progressWriter{total: resp.ContentLength, report: progress}
	_, copyErr := io.Copy(io.MultiWriter(out, pw), resp.Body)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(partPath)
		return fmt.Errorf("failed to download model: %w", copyErr)
	}

	return os.Rename(partPath, destPath)
}

type progressWriter struct {
	written int64
	total   int64
	report  func(downloaded, total int64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.report != nil {
		w.report(w.written, w.total)
	}
	return len(p), nil
}

func (t *Transcriber) DeleteModel(model string) error {
	return os.Remove(t.modelPath(model))
}

// Name returns the engine name
func (t *Transcriber) Name() string {
	return "whisper"
}

// Recognize runs whisper.cpp on a WAV file and joins its segments into one transcript
func (t *Transcriber) Recognize(ctx context.Context, audioPath string, opts ports.RecognizeOpts) (*domain.Transcript, error) {
	model := opts.Model
	if model == "" {
		model = "small"
	}

	if !t.IsModelDownloaded(model) {
		return nil, fmt.Errorf("%w: %s (run 'vid2srt model download %s')", domain.ErrModelNotFound, model, model)
	}

	// Find whisper binary
	whisperBin := t.findWhisperBinary()
	if whisperBin == "" {
		return nil, domain.ErrWhisperNotFound
	}

	outputBase := filepath.Join(filepath.Dir(audioPath), "whisper_"+uuid.NewString())

	cmd := exec.CommandContext(ctx, whisperBin, buildArgs(t.modelPath(model), audioPath, outputBase, opts.Language)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v: %s", domain.ErrRecognitionFailed, err, lastLine(string(out)))
	}

	// Read JSON output
	jsonPath := outputBase + ".json"
	defer os.Remove(jsonPath)

	transcript, err := t.parseWhisperJSON(jsonPath, model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}
	if opts.Language != "" && opts.Language != domain.AutoLanguage {
		transcript.Language = opts.Language
	}
	return transcript, nil
}

func buildArgs(modelPath, audioPath, outputBase, lang string) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-of", outputBase,
		"-oj", // JSON output
		"-np", // no progress prints
	}

	if lang != "" {
		if lang != domain.AutoLanguage {
			lang = domain.BaseLanguage(lang)
		}
		args = append(args, "-l", lang)
	}
	return args
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func (t *Transcriber) findWhisperBinary() string {
	if t.binPath != "" {
		if _, err := os.Stat(t.binPath); err == nil {
			return t.binPath
		}
		return ""
	}

	names := []string{"whisper-cli", "whisper", "whisper-cpp", "main"}
	if runtime.GOOS == "windows" {
		names = []string{"whisper-cli.exe", "whisper.exe", "whisper-cpp.exe", "main.exe"}
	}

	// Check bundled location
	for _, name := range names {
		bundled := filepath.Join(config.BinDir(), name)
		if _, err := os.Stat(bundled); err == nil {
			return bundled
		}
	}

	// Check PATH
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// IsAvailable reports whether a whisper.cpp binary can be found
func (t *Transcriber) IsAvailable() bool {
	return t.findWhisperBinary() != ""
}

// Instructions returns platform-specific installation instructions
func (t *Transcriber) Instructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "whisper.cpp not found. Install it with: brew install whisper-cpp"
	default:
		return "whisper.cpp not found. Build it from https://github.com/ggerganov/whisper.cpp and put whisper-cli on PATH or in " + config.BinDir()
	}
}

// BinaryPath returns the resolved whisper.cpp binary, or "" when missing
func (t *Transcriber) BinaryPath() string {
	return t.findWhisperBinary()
}

func (t *Transcriber) parseWhisperJSON(path string, model string) (*domain.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseWhisperOutput(data, model)
}

func parseWhisperOutput(data []byte, model string) (*domain.Transcript, error) {
	var output struct {
		Result struct {
			Language string `json:"language"`
		} `json:"result"`
		Transcription []struct {
			Text string `json:"text"`
		} `json:"transcription"`
	}

	if err := json.Unmarshal(data, &output); err != nil {
		return nil, err
	}

	var fullText strings.Builder
	for _, item := range output.Transcription {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		if fullText.Len() > 0 {
			fullText.WriteString(" ")
		}
		fullText.WriteString(text)
	}

	return &domain.Transcript{
		Text:         fullText.String(),
		Language:     output.Result.Language,
		Engine:       "whisper",
		Model:        model,
		RecognizedAt: time.Now(),
	}, nil
}

var (
	_ ports.SpeechRecognizer = (*Transcriber)(nil)
	_ ports.ModelManager     = (*Transcriber)(nil)
)
