package ocr

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxAltTextRunes bounds the length of recognized alt text.
const MaxAltTextRunes = 80

// ErrClosed is returned by a Client used after Close.
var ErrClosed = errors.New("ocr: client closed")

// firstLine returns the first non-blank line of text, trimmed and cut to
// MaxAltTextRunes runes.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > MaxAltTextRunes {
			line = string([]rune(line)[:MaxAltTextRunes])
			line = strings.TrimSpace(line)
		}
		return line
	}
	return ""
}
