// Package timecode converts between human clip-time strings and integer
// second offsets. Clip boundaries arrive from the web UI as "mm:ss" or
// "hh:mm:ss" strings and every downstream consumer works in seconds.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClipTime parses "mm:ss" or "hh:mm:ss" into total seconds.
// Parts must be non-negative integers; no upper bound is enforced, so
// durations past 24h are representable in the three-part form.
func ParseClipTime(value string) (int, error) {
	parts := strings.Split(value, ":")

	switch len(parts) {
	case 2:
		m, err := parsePart(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid clip time %q: %w", value, err)
		}
		s, err := parsePart(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid clip time %q: %w", value, err)
		}
		return m*60 + s, nil
	case 3:
		h, err := parsePart(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid clip time %q: %w", value, err)
		}
		m, err := parsePart(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid clip time %q: %w", value, err)
		}
		s, err := parsePart(parts[2])
		if err != nil {
			return 0, fmt.Errorf("invalid clip time %q: %w", value, err)
		}
		return h*3600 + m*60 + s, nil
	default:
		return 0, fmt.Errorf("invalid clip time %q: expected mm:ss or hh:mm:ss", value)
	}
}

// FormatSeconds renders a second offset as "mm:ss", or "hh:mm:ss" once the
// offset reaches an hour. Inverse of ParseClipTime for API responses.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func parsePart(p string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(p))
	if err != nil {
		return 0, fmt.Errorf("part %q is not an integer", p)
	}
	if n < 0 {
		return 0, fmt.Errorf("part %q is negative", p)
	}
	return n, nil
}
