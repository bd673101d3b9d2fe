package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/devbush/vid2srt/internal/adapters/cache"
	"github.com/devbush/vid2srt/internal/adapters/ffmpeg"
	"github.com/devbush/vid2srt/internal/adapters/openai"
	"github.com/devbush/vid2srt/internal/adapters/srtfile"
	"github.com/devbush/vid2srt/internal/adapters/whisper"
	"github.com/devbush/vid2srt/internal/application"
	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/logging"
	"github.com/devbush/vid2srt/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Cache      ports.TranscriptCache
	Extractor  ports.AudioExtractor
	Models     ports.ModelManager
	Recognizer ports.SpeechRecognizer

	SubtitleSvc *application.SubtitleService
	CacheSvc    *application.CacheService
}

// NewApp creates and wires up all dependencies. engine overrides the
// configured recognition engine when non-empty.
func NewApp(engine string) (*App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", config.ConfigPath(), err)
	}

	logger, err := logging.New(logOptions(cfg))
	if err != nil {
		return nil, err
	}

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		return nil, err
	}

	transcriber := whisper.NewTranscriber(config.ModelsDir(), cfg.Paths.Whisper)

	if engine == "" {
		engine = cfg.Defaults.Engine
	}
	recognizer, err := newRecognizer(engine, cfg, transcriber)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	cacheStore := cache.NewFileCacheFs(fs, config.CacheDir())
	extractor := ffmpeg.NewExtractor(cfg.Paths.FFmpeg)
	writer := srtfile.NewWriterFs(fs)

	subtitleSvc := application.NewSubtitleService(fs, cacheStore, extractor, recognizer, writer, ttl, logger)
	cacheSvc := application.NewCacheService(cacheStore, logger)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Cache:       cacheStore,
		Extractor:   extractor,
		Models:      transcriber,
		Recognizer:  recognizer,
		SubtitleSvc: subtitleSvc,
		CacheSvc:    cacheSvc,
	}, nil
}

// newRecognizer selects the speech recognition engine by name
func newRecognizer(engine string, cfg *config.Config, transcriber *whisper.Transcriber) (ports.SpeechRecognizer, error) {
	switch engine {
	case config.EngineWhisper:
		return transcriber, nil
	case config.EngineOpenAI:
		return openai.NewRecognizer(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model), nil
	default:
		return nil, fmt.Errorf("%w: %s (use %s or %s)", domain.ErrUnknownEngine, engine, config.EngineWhisper, config.EngineOpenAI)
	}
}

// logOptions merges the configured log settings with --quiet and --verbose
func logOptions(cfg *config.Config) logging.Options {
	opts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Quiet:  quietFlag,
	}
	if verboseFlag {
		opts.Level = "debug"
	}
	return opts
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(engineFlag)
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
