package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devbush/vid2srt/internal/domain"
)

// Output formats
const (
	FormatSRT  = "srt"
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the supported output formats
var Formats = []string{FormatSRT, FormatText, FormatJSON}

// FormatExt returns the file extension used for an output format
func FormatExt(format string) string {
	switch format {
	case FormatText:
		return ".txt"
	case FormatJSON:
		return ".json"
	default:
		return ".srt"
	}
}

// ValidateFormat checks that format is one of Formats
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown format %q (use %s)", domain.ErrInvalidArgument, format, strings.Join(Formats, ", "))
}

type jsonDocument struct {
	Transcript *domain.Transcript `json:"transcript"`
	Cues       []domain.Cue       `json:"cues"`
}

// Render produces the output document for a transcript and its cues
func Render(format string, transcript *domain.Transcript, cues []domain.Cue) (string, error) {
	switch format {
	case FormatSRT:
		return domain.SerializeCues(cues), nil
	case FormatText:
		return transcript.ToText() + "\n", nil
	case FormatJSON:
		if cues == nil {
			cues = []domain.Cue{}
		}
		data, err := json.MarshalIndent(jsonDocument{Transcript: transcript, Cues: cues}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", ValidateFormat(format)
	}
}
