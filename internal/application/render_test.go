package application

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/devbush/vid2srt/internal/domain"
)

func TestRender(t *testing.T) {
	transcript := &domain.Transcript{Text: "hello   big\nworld", Language: "en-US", Engine: "whisper", Model: "small"}
	cues, err := domain.SegmentTranscript(transcript.Text, 2, 3)
	if err != nil {
		t.Fatalf("SegmentTranscript() error = %v", err)
	}

	t.Run("srt", func(t *testing.T) {
		got, err := Render(FormatSRT, transcript, cues)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		want := "1\n00:00:00,000 --> 00:00:03,000\nhello big\n\n2\n00:00:03,000 --> 00:00:06,000\nworld\n\n"
		if got != want {
			t.Errorf("Render(srt) = %q, want %q", got, want)
		}
	})

	t.Run("text", func(t *testing.T) {
		got, err := Render(FormatText, transcript, cues)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "hello big world\n" {
			t.Errorf("Render(text) = %q", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		got, err := Render(FormatJSON, transcript, cues)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		var doc struct {
			Transcript domain.Transcript `json:"transcript"`
			Cues       []domain.Cue      `json:"cues"`
		}
		if err := json.Unmarshal([]byte(got), &doc); err != nil {
			t.Fatalf("Render(json) produced invalid JSON: %v", err)
		}
		if doc.Transcript.Engine != "whisper" || len(doc.Cues) != 2 {
			t.Errorf("Render(json) = %+v", doc)
		}
		if doc.Cues[1].Start != "00:00:03,000" || doc.Cues[1].Text != "world" {
			t.Errorf("second cue = %+v", doc.Cues[1])
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Render("vtt", transcript, cues); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Render(vtt) error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestFormatExt(t *testing.T) {
	tests := map[string]string{
		FormatSRT:  ".srt",
		FormatText: ".txt",
		FormatJSON: ".json",
		"":         ".srt",
	}
	for format, want := range tests {
		if got := FormatExt(format); got != want {
			t.Errorf("FormatExt(%q) = %s, want %s", format, got, want)
		}
	}
}
