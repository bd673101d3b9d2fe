package ports

import "context"

// AudioExtractor pulls the audio track out of a video file.
type AudioExtractor interface {
	// Extract writes the audio of videoPath as a mono 16 kHz WAV file inside
	// destDir and returns its path. The caller owns destDir and its cleanup.
	Extract(ctx context.Context, videoPath string, destDir string) (string, error)

	// IsAvailable checks if the extraction tool is installed.
	IsAvailable() bool

	// BinaryPath returns the path to the extraction tool.
	BinaryPath() string

	// Instructions explains how to install the extraction tool.
	Instructions() string
}
