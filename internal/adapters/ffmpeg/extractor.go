package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

// Extractor implements ports.AudioExtractor by running ffmpeg
type Extractor struct {
	binPath  string
	override string
}

// NewExtractor creates an extractor. An empty binPath means the binary is
// looked up in the bundled bin directory and then on PATH.
func NewExtractor(binPath string) *Extractor {
	return &Extractor{override: binPath}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func (e *Extractor) findBinary() string {
	if e.override != "" {
		if _, err := os.Stat(e.override); err == nil {
			return e.override
		}
		return ""
	}

	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (e *Extractor) BinaryPath() string {
	if e.binPath != "" {
		return e.binPath
	}
	e.binPath = e.findBinary()
	return e.binPath
}

func (e *Extractor) IsAvailable() bool {
	return e.BinaryPath() != ""
}

// Instructions returns platform-specific installation instructions
func (e *Extractor) Instructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "ffmpeg not found. Install it with: brew install ffmpeg"
	case "windows":
		return "ffmpeg not found. Install it with: winget install ffmpeg"
	default:
		return "ffmpeg not found. Install it with your package manager, e.g.: sudo apt install ffmpeg"
	}
}

// audioPath returns the WAV path used for a video inside destDir
func audioPath(videoPath, destDir string) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(destDir, base+"_audio_16k.wav")
}

// buildArgs returns the ffmpeg arguments for a mono 16 kHz WAV extraction
func buildArgs(videoPath, outPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outPath,
	}
}

func (e *Extractor) Extract(ctx context.Context, videoPath string, destDir string) (string, error) {
	binPath := e.BinaryPath()
	if binPath == "" {
		return "", domain.ErrFFmpegNotFound
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	out := audioPath(videoPath, destDir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binPath, buildArgs(videoPath, out)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", classifyError(stderr.String(), err)
	}

	return out, nil
}

// classifyError maps ffmpeg stderr output onto domain errors
func classifyError(stderr string, err error) error {
	switch {
	case strings.Contains(stderr, "does not contain any stream"),
		strings.Contains(stderr, "Output file #0 does not contain"),
		strings.Contains(stderr, "matches no streams"):
		return domain.ErrNoAudioTrack
	case strings.Contains(stderr, "No such file or directory"):
		return domain.ErrVideoNotFound
	}

	msg := lastLine(stderr)
	if msg == "" {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return fmt.Errorf("ffmpeg failed: %s: %w", msg, err)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ ports.AudioExtractor = (*Extractor)(nil)
