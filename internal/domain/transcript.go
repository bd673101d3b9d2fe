package domain

import (
	"strings"
	"time"
)

// Transcript is the flat text returned by a speech recognizer
type Transcript struct {
	Text         string    `json:"text"`
	Language     string    `json:"language"`
	Engine       string    `json:"engine"`
	Model        string    `json:"model"`
	RecognizedAt time.Time `json:"recognized_at"`
}

// Words returns the whitespace-separated words of the transcript
func (t *Transcript) Words() []string {
	if t == nil {
		return nil
	}
	return strings.Fields(t.Text)
}

// IsEmpty reports whether the transcript contains no words
func (t *Transcript) IsEmpty() bool {
	return len(t.Words()) == 0
}

// ToText returns the transcript with whitespace runs collapsed
func (t *Transcript) ToText() string {
	return strings.Join(t.Words(), " ")
}
