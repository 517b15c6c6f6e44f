package export

import (
	"strings"
	"unicode"
)

// SanitizeName strips control characters and replaces filesystem-hostile
// runes so a clip title can become a download filename.
func SanitizeName(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if isAllowedNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = string(runes[:maxLen])
		}
	}
	return cleaned
}

func isAllowedNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '-', '_', '.', ',', '(', ')':
		return true
	default:
		return false
	}
}

// Filename builds a safe .srt filename from a clip title, falling back to
// the clip id for titles that sanitize to nothing.
func Filename(title, clipID string) string {
	name := SanitizeName(title, 64)
	if name == "" {
		name = clipID
	}
	return name + ".srt"
}
