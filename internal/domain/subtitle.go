package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment is a contiguous run of transcript words with its time window in seconds
type Segment struct {
	Index int      `json:"index"`
	Words []string `json:"words"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
}

// Cue is one SubRip subtitle entry
type Cue struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// SplitTranscript partitions the whitespace-separated words of transcript into
// segments of wordsPerSegment words. Every segment spans exactly
// secondsPerSegment seconds, including a short final one, and starts where the
// previous one ended.
func SplitTranscript(transcript string, wordsPerSegment int, secondsPerSegment float64) ([]Segment, error) {
	if err := ValidateSegmentation(wordsPerSegment, secondsPerSegment); err != nil {
		return nil, err
	}

	words := strings.Fields(transcript)
	if len(words) == 0 {
		return []Segment{}, nil
	}

	segments := make([]Segment, 0, (len(words)+wordsPerSegment-1)/wordsPerSegment)
	start := 0.0
	for i := 0; i < len(words); i += wordsPerSegment {
		end := min(i+wordsPerSegment, len(words))
		segments = append(segments, Segment{
			Index: len(segments) + 1,
			Words: words[i:end:end],
			Start: start,
			End:   start + secondsPerSegment,
		})
		start += secondsPerSegment
	}

	return segments, nil
}

// ValidateSegmentation checks segment size and duration
func ValidateSegmentation(wordsPerSegment int, secondsPerSegment float64) error {
	if wordsPerSegment <= 0 {
		return fmt.Errorf("%w: words per segment must be positive, got %d", ErrInvalidArgument, wordsPerSegment)
	}
	if !(secondsPerSegment > 0) || math.IsInf(secondsPerSegment, 1) {
		return fmt.Errorf("%w: seconds per segment must be positive, got %v", ErrInvalidArgument, secondsPerSegment)
	}
	return nil
}

// SegmentTranscript turns a flat transcript into SubRip cues
func SegmentTranscript(transcript string, wordsPerSegment int, secondsPerSegment float64) ([]Cue, error) {
	segments, err := SplitTranscript(transcript, wordsPerSegment, secondsPerSegment)
	if err != nil {
		return nil, err
	}

	cues := make([]Cue, 0, len(segments))
	for _, seg := range segments {
		cue, err := seg.Cue()
		if err != nil {
			return nil, err
		}
		cues = append(cues, cue)
	}
	return cues, nil
}

// Cue formats the segment as a subtitle cue
func (s Segment) Cue() (Cue, error) {
	start, err := FormatTime(s.Start)
	if err != nil {
		return Cue{}, err
	}
	end, err := FormatTime(s.End)
	if err != nil {
		return Cue{}, err
	}
	return Cue{
		Index: s.Index,
		Start: start,
		End:   end,
		Text:  strings.Join(s.Words, " "),
	}, nil
}

// FormatTime converts seconds to a SubRip timestamp (HH:MM:SS,mmm).
// Milliseconds are rounded, carrying into the seconds field when needed.
// Hours are not capped and grow past two digits.
func FormatTime(seconds float64) (string, error) {
	if seconds < 0 || math.IsNaN(seconds) || seconds*1000 >= math.MaxInt64 {
		return "", fmt.Errorf("%w: time must be a non-negative number of seconds, got %v", ErrInvalidArgument, seconds)
	}

	total := int64(math.Round(seconds * 1000))
	millis := total % 1000
	total /= 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis), nil
}

// SerializeCues renders cues as SubRip text. Each cue block ends with a blank line.
func SerializeCues(cues []Cue) string {
	var sb strings.Builder

	for _, cue := range cues {
		sb.WriteString(strconv.Itoa(cue.Index))
		sb.WriteString("\n")
		sb.WriteString(cue.Start)
		sb.WriteString(" --> ")
		sb.WriteString(cue.End)
		sb.WriteString("\n")
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
