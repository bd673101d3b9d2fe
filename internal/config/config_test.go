package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Engine != EngineWhisper {
		t.Errorf("Default engine = %s, want whisper", cfg.Defaults.Engine)
	}
	if cfg.Defaults.Model != "small" {
		t.Errorf("Default model = %s, want small", cfg.Defaults.Model)
	}
	if cfg.Defaults.Language != "en-US" {
		t.Errorf("Default language = %s, want en-US", cfg.Defaults.Language)
	}
	if cfg.Defaults.WordsPerSegment != 10 {
		t.Errorf("Default words per segment = %d, want 10", cfg.Defaults.WordsPerSegment)
	}
	if cfg.Defaults.SecondsPerSegment != 10 {
		t.Errorf("Default seconds per segment = %v, want 10", cfg.Defaults.SecondsPerSegment)
	}
	if cfg.Defaults.CacheTTL != "7d" {
		t.Errorf("Default cache TTL = %s, want 7d", cfg.Defaults.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		wantSecs int64
		wantErr  bool
	}{
		{"24h", 86400, false},
		{"7d", 604800, false},
		{"30d", 2592000, false},
		{"1h", 3600, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dur, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDuration(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err == nil && int64(dur.Seconds()) != tt.wantSecs {
				t.Errorf("ParseDuration(%s) = %v, want %d seconds", tt.input, dur, tt.wantSecs)
			}
		})
	}
}

func TestConfig_Save_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Model = "large"
	cfg.Defaults.WordsPerSegment = 20

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Defaults.Model != "large" {
		t.Errorf("Loaded model = %s, want large", loaded.Defaults.Model)
	}
	if loaded.Defaults.WordsPerSegment != 20 {
		t.Errorf("Loaded words per segment = %d, want 20", loaded.Defaults.WordsPerSegment)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Language != "en-US" {
		t.Errorf("Loaded language = %s, want en-US", cfg.Defaults.Language)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "defaults:\n  language: fr-FR\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Language != "fr-FR" {
		t.Errorf("language = %s, want fr-FR", cfg.Defaults.Language)
	}
	if cfg.Defaults.WordsPerSegment != 10 {
		t.Errorf("words per segment = %d, want default 10", cfg.Defaults.WordsPerSegment)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("defaults: [unterminated"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want sk-from-env", cfg.OpenAI.APIKey)
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.OpenAI.APIKey)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"openai engine", func(c *Config) { c.Defaults.Engine = EngineOpenAI }, false},
		{"unknown engine", func(c *Config) { c.Defaults.Engine = "google" }, true},
		{"zero words", func(c *Config) { c.Defaults.WordsPerSegment = 0 }, true},
		{"negative seconds", func(c *Config) { c.Defaults.SecondsPerSegment = -1 }, true},
		{"bad ttl", func(c *Config) { c.Defaults.CacheTTL = "forever" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Set(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("defaults.words_per_segment", "20"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Defaults.WordsPerSegment != 20 {
		t.Errorf("WordsPerSegment = %d, want 20", cfg.Defaults.WordsPerSegment)
	}

	if err := cfg.Set("defaults.seconds_per_segment", "7.5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Defaults.SecondsPerSegment != 7.5 {
		t.Errorf("SecondsPerSegment = %v, want 7.5", cfg.Defaults.SecondsPerSegment)
	}

	if err := cfg.Set("defaults.words_per_segment", "abc"); err == nil {
		t.Error("Set() should reject non-integer words_per_segment")
	}
	if err := cfg.Set("defaults.words_per_segment", "0"); err == nil {
		t.Error("Set() should reject zero words_per_segment")
	}
	if err := cfg.Set("nope.key", "x"); err == nil {
		t.Error("Set() should reject unknown keys")
	}
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	if dir == "" {
		t.Error("AppDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".vid2srt")
	if dir != expected {
		t.Errorf("AppDir() = %s, want %s", dir, expected)
	}
}

func TestConfig_EntriesRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.SecondsPerSegment = 2.5
	cfg.OpenAI.APIKey = "sk-test"

	copyCfg := DefaultConfig()
	for _, e := range cfg.Entries() {
		if err := copyCfg.Set(e.Key, e.Value); err != nil {
			t.Fatalf("Set(%s, %q) error = %v", e.Key, e.Value, err)
		}
	}

	if copyCfg.Defaults.SecondsPerSegment != 2.5 {
		t.Errorf("SecondsPerSegment = %v, want 2.5", copyCfg.Defaults.SecondsPerSegment)
	}
	if copyCfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", copyCfg.OpenAI.APIKey)
	}
	if len(cfg.Entries()) != 13 {
		t.Errorf("len(Entries()) = %d, want 13", len(cfg.Entries()))
	}
}

func TestConfig_ModelFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.Model = "medium"

	tests := []struct {
		engine string
		want   string
	}{
		{EngineWhisper, "medium"},
		{EngineOpenAI, "whisper-1"},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			if got := cfg.ModelFor(tt.engine); got != tt.want {
				t.Errorf("ModelFor(%s) = %s, want %s", tt.engine, got, tt.want)
			}
		})
	}
}
