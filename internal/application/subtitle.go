package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

// StdoutPath as an output path writes the result to standard output
const StdoutPath = "-"

// Step is a stage of subtitle generation
type Step int

const (
	StepExtract Step = iota
	StepRecognize
	StepSegment
	StepSave
)

func (s Step) String() string {
	switch s {
	case StepExtract:
		return "Extracting audio"
	case StepRecognize:
		return "Recognizing speech"
	case StepSegment:
		return "Generating subtitles"
	case StepSave:
		return "Saving subtitles"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// GenerateRequest configures one subtitle generation
type GenerateRequest struct {
	VideoPath         string
	OutputPath        string // empty: next to the video; "-": returned only
	Format            string // srt (default), text, json
	Language          string // BCP 47 code, empty defaults to en-US
	Model             string
	WordsPerSegment   int
	SecondsPerSegment float64
	NoCache           bool
	Force             bool

	// OnStep is called when a stage begins. Cache hits skip straight to StepSegment.
	OnStep func(Step)
}

// GenerateResult contains the generated subtitles
type GenerateResult struct {
	Video      *domain.Video
	Transcript *domain.Transcript
	Cues       []domain.Cue
	Content    string
	OutputPath string // empty when the result went to stdout
	FromCache  bool
}

// SubtitleService orchestrates audio extraction, recognition and segmentation
type SubtitleService struct {
	fs         afero.Fs
	cache      ports.TranscriptCache
	extractor  ports.AudioExtractor
	recognizer ports.SpeechRecognizer
	writer     ports.SubtitleWriter
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewSubtitleService creates a new subtitle service
func NewSubtitleService(
	fs afero.Fs,
	cache ports.TranscriptCache,
	extractor ports.AudioExtractor,
	recognizer ports.SpeechRecognizer,
	writer ports.SubtitleWriter,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SubtitleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubtitleService{
		fs:         fs,
		cache:      cache,
		extractor:  extractor,
		recognizer: recognizer,
		writer:     writer,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Generate turns a video into subtitles. Arguments are validated and the
// output path checked before any audio is extracted.
func (s *SubtitleService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	started := time.Now()

	video, info, err := s.resolveVideo(req.VideoPath)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateSegmentation(req.WordsPerSegment, req.SecondsPerSegment); err != nil {
		return nil, err
	}

	language, err := domain.NormalizeLanguage(req.Language)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = FormatSRT
	}
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = video.DefaultSubtitlePath()
		if format != FormatSRT {
			outputPath = strings.TrimSuffix(outputPath, ".srt") + FormatExt(format)
		}
	}
	if outputPath == StdoutPath {
		outputPath = ""
	}
	if outputPath != "" && !req.Force && s.writer.Exists(outputPath) {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrOutputExists, outputPath)
	}

	log := s.logger.With(
		zap.String("video", video.Path),
		zap.String("engine", s.recognizer.Name()),
		zap.String("model", req.Model),
		zap.String("language", language),
	)

	key := Fingerprint(video.Path, info, s.recognizer.Name(), req.Model, language)

	transcript, fromCache := s.lookup(ctx, key, req.NoCache, log)
	if !fromCache {
		transcript, err = s.recognize(ctx, video, req, language, log)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, video, transcript, log)
	}

	if transcript.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTranscript, video.Path)
	}

	notify(req.OnStep, StepSegment)
	cues, err := domain.SegmentTranscript(transcript.Text, req.WordsPerSegment, req.SecondsPerSegment)
	if err != nil {
		return nil, err
	}

	content, err := Render(format, transcript, cues)
	if err != nil {
		return nil, err
	}

	if outputPath != "" {
		notify(req.OnStep, StepSave)
		if err := s.writer.Write(outputPath, content, req.Force); err != nil {
			return nil, err
		}
	}

	log.Debug("subtitles generated",
		zap.Int("words", len(transcript.Words())),
		zap.Int("cues", len(cues)),
		zap.String("output", outputPath),
		zap.Bool("cached", fromCache),
		zap.Duration("duration", time.Since(started)),
	)

	return &GenerateResult{
		Video:      video,
		Transcript: transcript,
		Cues:       cues,
		Content:    content,
		OutputPath: outputPath,
		FromCache:  fromCache,
	}, nil
}

func (s *SubtitleService) resolveVideo(input string) (*domain.Video, os.FileInfo, error) {
	video, err := domain.ParseVideoInput(input)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	info, err := s.fs.Stat(video.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, video.Path)
		}
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is a directory", domain.ErrVideoNotFound, video.Path)
	}

	return video, info, nil
}

func (s *SubtitleService) lookup(ctx context.Context, key string, noCache bool, log *zap.Logger) (*domain.Transcript, bool) {
	if noCache {
		return nil, false
	}

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil && cached != nil && cached.Transcript != nil:
		log.Debug("transcript cache hit", zap.String("key", key))
		return cached.Transcript, true
	case err == nil, errors.Is(err, domain.ErrCacheMiss), errors.Is(err, domain.ErrCacheExpired):
		log.Debug("transcript cache miss", zap.String("key", key))
	default:
		log.Warn("transcript cache unreadable", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

func (s *SubtitleService) recognize(ctx context.Context, video *domain.Video, req GenerateRequest, language string, log *zap.Logger) (*domain.Transcript, error) {
	workDir, err := afero.TempDir(s.fs, "", "vid2srt-")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() {
		if err := s.fs.RemoveAll(workDir); err != nil {
			log.Warn("failed to remove work directory", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	notify(req.OnStep, StepExtract)
	stepStart := time.Now()
	audioPath, err := s.extractor.Extract(ctx, video.Path, workDir)
	if err != nil {
		return nil, err
	}
	log.Debug("audio extracted", zap.String("audio", audioPath), zap.Duration("duration", time.Since(stepStart)))

	notify(req.OnStep, StepRecognize)
	stepStart = time.Now()
	transcript, err := s.recognizer.Recognize(ctx, audioPath, ports.RecognizeOpts{
		Model:    req.Model,
		Language: language,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("speech recognized",
		zap.Int("words", len(transcript.Words())),
		zap.Duration("duration", time.Since(stepStart)),
	)

	return transcript, nil
}

// store caches a fresh transcript; failures only get logged
func (s *SubtitleService) store(ctx context.Context, key string, video *domain.Video, transcript *domain.Transcript, log *zap.Logger) {
	if transcript.IsEmpty() {
		return
	}

	now := time.Now()
	item := &ports.CachedItem{
		Transcript: transcript,
		VideoPath:  video.Path,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cacheTTL),
	}
	if err := s.cache.Set(ctx, key, item); err != nil {
		log.Warn("failed to cache transcript", zap.String("key", key), zap.Error(err))
	}
}

func notify(fn func(Step), step Step) {
	if fn != nil {
		fn(step)
	}
}
