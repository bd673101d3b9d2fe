package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported recognition engines
const (
	EngineWhisper = "whisper"
	EngineOpenAI  = "openai"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Paths    PathsConfig    `yaml:"paths"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultsConfig holds default values
type DefaultsConfig struct {
	Engine            string  `yaml:"engine"`
	Model             string  `yaml:"model"`
	Language          string  `yaml:"language"`
	WordsPerSegment   int     `yaml:"words_per_segment"`
	SecondsPerSegment float64 `yaml:"seconds_per_segment"`
	CacheTTL          string  `yaml:"cache_ttl"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	Whisper string `yaml:"whisper"`
}

// OpenAIConfig configures the OpenAI-compatible transcription endpoint
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Engine:            EngineWhisper,
			Model:             "small",
			Language:          "en-US",
			WordsPerSegment:   10,
			SecondsPerSegment: 10,
			CacheTTL:          "7d",
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "whisper-1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// AppDir returns the application directory (~/.vid2srt)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vid2srt"
	}
	return filepath.Join(home, ".vid2srt")
}

// ModelsDir returns the models directory
func ModelsDir() string {
	return filepath.Join(AppDir(), "models")
}

// CacheDir returns the cache directory
func CacheDir() string {
	return filepath.Join(AppDir(), "cache")
}

// BinDir returns the bin directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), ModelsDir(), CacheDir(), BinDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists.
// OPENAI_API_KEY fills in the API key when the file leaves it empty.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

// LoadFile reads config from file only, without environment overrides
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// Validate checks that configured values are usable
func (c *Config) Validate() error {
	switch c.Defaults.Engine {
	case EngineWhisper, EngineOpenAI:
	default:
		return fmt.Errorf("unknown engine: %s (use %s or %s)", c.Defaults.Engine, EngineWhisper, EngineOpenAI)
	}
	if c.Defaults.WordsPerSegment <= 0 {
		return fmt.Errorf("words_per_segment must be positive, got %d", c.Defaults.WordsPerSegment)
	}
	if c.Defaults.SecondsPerSegment <= 0 {
		return fmt.Errorf("seconds_per_segment must be positive, got %v", c.Defaults.SecondsPerSegment)
	}
	if _, err := c.GetCacheTTL(); err != nil {
		return err
	}
	return nil
}

// ModelFor returns the configured model for a recognition engine
func (c *Config) ModelFor(engine string) string {
	if engine == EngineOpenAI {
		return c.OpenAI.Model
	}
	return c.Defaults.Model
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Defaults.CacheTTL)
}

// Set updates a single value addressed by its YAML key, e.g. "defaults.language"
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "defaults.engine":
		c.Defaults.Engine = value
	case "defaults.model":
		c.Defaults.Model = value
	case "defaults.language":
		c.Defaults.Language = value
	case "defaults.words_per_segment":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", value, err)
		}
		c.Defaults.WordsPerSegment = n
	case "defaults.seconds_per_segment":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", value, err)
		}
		c.Defaults.SecondsPerSegment = f
	case "defaults.cache_ttl":
		c.Defaults.CacheTTL = value
	case "paths.ffmpeg":
		c.Paths.FFmpeg = value
	case "paths.whisper":
		c.Paths.Whisper = value
	case "openai.api_key":
		c.OpenAI.APIKey = value
	case "openai.base_url":
		c.OpenAI.BaseURL = value
	case "openai.model":
		c.OpenAI.Model = value
	case "log.level":
		c.Log.Level = value
	case "log.format":
		c.Log.Format = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

// Entry is one configuration value addressed by its YAML key
type Entry struct {
	Key   string
	Value string
}

// Entries lists every settable value in file order
func (c *Config) Entries() []Entry {
	return []Entry{
		{"defaults.engine", c.Defaults.Engine},
		{"defaults.model", c.Defaults.Model},
		{"defaults.language", c.Defaults.Language},
		{"defaults.words_per_segment", strconv.Itoa(c.Defaults.WordsPerSegment)},
		{"defaults.seconds_per_segment", strconv.FormatFloat(c.Defaults.SecondsPerSegment, 'g', -1, 64)},
		{"defaults.cache_ttl", c.Defaults.CacheTTL},
		{"paths.ffmpeg", c.Paths.FFmpeg},
		{"paths.whisper", c.Paths.Whisper},
		{"openai.api_key", c.OpenAI.APIKey},
		{"openai.base_url", c.OpenAI.BaseURL},
		{"openai.model", c.OpenAI.Model},
		{"log.level", c.Log.Level},
		{"log.format", c.Log.Format},
	}
}

var durationPattern = regexp.MustCompile(`^(\d+)(h|d)$`)

// ParseDuration parses duration strings like "24h", "7d", "30d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
