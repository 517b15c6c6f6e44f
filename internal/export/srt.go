// Package export serializes a clip's caption phrases into downloadable
// subtitle files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/clipforge/clipforge-agent/internal/captions"
)

// GenerateSRT renders phrases as an SRT document. Timestamps are shifted
// by clipStart so cue times line up with the rendered clip, which begins
// at zero, rather than with the source recording.
func GenerateSRT(phrases []captions.Phrase, clipStart float64) string {
	var b strings.Builder
	for i, p := range phrases {
		start := p.Start - clipStart
		end := p.End - clipStart
		if start < 0 {
			start = 0
		}
		if end < start {
			end = start
		}

		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", formatSRTTime(start), formatSRTTime(end))
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// formatSRTTime converts seconds to SRT time format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	totalMillis := int(math.Round(math.Abs(seconds) * 1000))
	millis := totalMillis % 1000
	totalSec := totalMillis / 1000
	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	secs := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
