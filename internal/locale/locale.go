package locale

import (
	"errors"
	"strings"
)

// Locale is one of the two languages the site serves.
type Locale string

const (
	NL Locale = "nl"
	EN Locale = "en"
)

var All = []Locale{NL, EN}

var ErrUnknown = errors.New("unknown locale")

func Parse(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case NL:
		return NL, nil
	case EN:
		return EN, nil
	}
	return "", ErrUnknown
}

// Other returns the opposite locale.
func (l Locale) Other() Locale {
	if l == NL {
		return EN
	}
	return NL
}

// Name returns the English language name, used in AI prompts.
func (l Locale) Name() string {
	if l == NL {
		return "Dutch"
	}
	return "English"
}

func (l Locale) String() string {
	return string(l)
}
