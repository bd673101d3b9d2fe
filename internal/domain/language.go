package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	// DefaultLanguage is used when no language code is given
	DefaultLanguage = "en-US"
	// AutoLanguage asks the recognizer to detect the spoken language
	AutoLanguage = "auto"
)

// NormalizeLanguage validates a BCP 47 language code such as "en-US" or
// "fr" and returns its canonical form. An empty code yields DefaultLanguage;
// "auto" is passed through unchanged.
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	switch strings.ToLower(code) {
	case "":
		return DefaultLanguage, nil
	case AutoLanguage:
		return AutoLanguage, nil
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: invalid language code %q", ErrInvalidArgument, code)
	}
	return tag.String(), nil
}

// BaseLanguage returns the ISO 639-1 part of a language code ("en-US" -> "en").
// Unparseable codes are returned unchanged.
func BaseLanguage(code string) string {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	return base.String()
}
