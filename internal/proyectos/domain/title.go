package domain

import (
	"strings"
	"unicode/utf8"
)

// Title length bounds in characters, measured after trimming surrounding
// whitespace.
const (
	minTitleLen = 10
	maxTitleLen = 500
)

// Title is the validated proyecto title.
type Title string

// NewTitle trims and validates a raw title string.
func NewTitle(raw string) (Title, error) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return "", newValidation("title", "title is required")
	}
	if utf8.RuneCountInString(t) < minTitleLen {
		return "", newValidation("title", "title must be at least 10 characters")
	}
	if utf8.RuneCountInString(t) > maxTitleLen {
		return "", newValidation("title", "title must be at most 500 characters")
	}
	return Title(t), nil
}

func (t Title) String() string { return string(t) }
