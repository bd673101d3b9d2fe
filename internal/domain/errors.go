package domain

import "errors"

var (
	// Contract violations of the subtitle core
	ErrInvalidArgument = errors.New("invalid argument")

	// Input errors
	ErrVideoNotFound = errors.New("video file not found")
	ErrOutputExists  = errors.New("output file already exists")

	// Media errors
	ErrNoAudioTrack   = errors.New("video has no audio track")
	ErrFFmpegNotFound = errors.New("ffmpeg not found")

	// Recognition errors
	ErrRecognitionFailed = errors.New("speech recognition failed")
	ErrEmptyTranscript   = errors.New("no speech recognized")
	ErrModelNotFound     = errors.New("model not found")
	ErrWhisperNotFound   = errors.New("whisper binary not found")
	ErrUnknownEngine     = errors.New("unknown recognition engine")
	ErrMissingAPIKey     = errors.New("missing API key")

	// Cache errors
	ErrCacheExpired = errors.New("cache expired")
	ErrCacheMiss    = errors.New("cache miss")
)
