package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// mediaExts is the set of file extensions accepted as video input
var mediaExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".m4v":  true,
	".flv":  true,
	".wmv":  true,
}

// Video is a video file to be subtitled
type Video struct {
	Path string
}

// Name returns the file name without directory and extension
func (v *Video) Name() string {
	base := filepath.Base(v.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasKnownExtension reports whether the file extension is a recognised video container
func (v *Video) HasKnownExtension() bool {
	return mediaExts[strings.ToLower(filepath.Ext(v.Path))]
}

// DefaultSubtitlePath returns the .srt path next to the video
func (v *Video) DefaultSubtitlePath() string {
	dir := filepath.Dir(v.Path)
	return filepath.Join(dir, v.Name()+".srt")
}

// ParseVideoInput cleans a user-supplied video path. Surrounding quotes, as
// left by dragging a file into a terminal, are removed.
func ParseVideoInput(input string) (*Video, error) {
	input = strings.TrimSpace(input)
	input = trimQuotes(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	path, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("invalid video path %s: %w", input, err)
	}

	return &Video{Path: path}, nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
