package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/ports"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"short", "*****"},
		{"sk-1234567890abcd", "********abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := maskSecret(tt.input); got != tt.expected {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConfigTable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OpenAI.APIKey = "sk-secret-value-9876"

	out := configTable(cfg)
	if strings.Contains(out, "sk-secret") {
		t.Errorf("configTable() leaked the API key:\n%s", out)
	}
	for _, want := range []string{"defaults.language", "en-US", "********9876"} {
		if !strings.Contains(out, want) {
			t.Errorf("configTable() missing %q:\n%s", want, out)
		}
	}
}

func TestModelTable(t *testing.T) {
	out := modelTable([]ports.Model{
		{Name: "tiny", Size: 75 * 1024 * 1024, Description: "Fastest", Downloaded: true},
		{Name: "small", Size: 466 * 1024 * 1024, Description: "Balanced"},
	}, "small")

	for _, want := range []string{"tiny", "75.0 MB", "downloaded", "not downloaded (default)"} {
		if !strings.Contains(out, want) {
			t.Errorf("modelTable() missing %q:\n%s", want, out)
		}
	}
}

func TestBinaryStatus(t *testing.T) {
	missing := binaryStatus("ffmpeg", "", "install it")
	if missing.Status != "missing" || missing.Detail != "install it" {
		t.Errorf("binaryStatus() missing = %+v", missing)
	}

	found := binaryStatus("ffmpeg", "/usr/bin/ffmpeg", "install it")
	if found.Status != "installed" || found.Detail != "/usr/bin/ffmpeg" {
		t.Errorf("binaryStatus() found = %+v", found)
	}
}

func TestOpenAIStatus(t *testing.T) {
	cfg := config.DefaultConfig()
	if s := openAIStatus(cfg); s.Status != "no api key" {
		t.Errorf("openAIStatus() without key = %+v", s)
	}

	cfg.OpenAI.APIKey = "sk-test"
	if s := openAIStatus(cfg); s.Status != "configured" || !strings.Contains(s.Detail, "whisper-1") {
		t.Errorf("openAIStatus() with key = %+v", s)
	}
}

func TestValidateLanguage(t *testing.T) {
	if err := validateLanguage("fr-FR"); err != nil {
		t.Errorf("validateLanguage(fr-FR) error = %v", err)
	}
	if err := validateLanguage("not a language"); err == nil {
		t.Error("validateLanguage() should reject garbage")
	}
}

func TestValidateVideoInput(t *testing.T) {
	dir := t.TempDir()
	if err := validateVideoInput(dir); err == nil {
		t.Error("validateVideoInput() should reject a directory")
	}
	if err := validateVideoInput(dir + "/missing.mp4"); err == nil {
		t.Error("validateVideoInput() should reject a missing file")
	}
	if err := validateVideoInput(""); err == nil {
		t.Error("validateVideoInput() should reject empty input")
	}

	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("text"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := validateVideoInput(notes); err == nil {
		t.Error("validateVideoInput() should reject an unknown extension")
	}

	clip := filepath.Join(dir, "clip.MKV")
	if err := os.WriteFile(clip, []byte("video"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := validateVideoInput(`"` + clip + `"`); err != nil {
		t.Errorf("validateVideoInput() error = %v for a quoted video file", err)
	}
}
