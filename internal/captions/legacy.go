package captions

import (
	"regexp"
	"strconv"
	"strings"
)

// markerPattern matches inline timestamps of the form [MM:SS] in raw
// transcript text.
var markerPattern = regexp.MustCompile(`\[(\d{1,3}):(\d{2})\]`)

// lastSegmentDuration is the assumed length of the final marker's segment,
// which has no following marker to terminate it.
const lastSegmentDuration = 5.0

type legacySegment struct {
	start float64
	end   float64
	text  string
}

// LegacyPhrases builds phrases for [start, end] from raw transcript text
// with inline [MM:SS] markers. Each marker's segment spans to the next
// marker, or five seconds for the last one. Segments overlapping the clip
// range are kept with their bounds clipped into the range.
func LegacyPhrases(start, end float64, rawText string) []Phrase {
	segments := scanMarkers(rawText)

	var phrases []Phrase
	for _, seg := range segments {
		// Segment spans are half-open: one ending exactly at the clip
		// start does not overlap it.
		if seg.end <= start || seg.start > end {
			continue
		}
		phrases = append(phrases, Phrase{
			Start: max(seg.start, start),
			End:   min(seg.end, end),
			Text:  seg.text,
		})
	}
	return phrases
}

func scanMarkers(rawText string) []legacySegment {
	matches := markerPattern.FindAllStringSubmatchIndex(rawText, -1)

	var segments []legacySegment
	for i, m := range matches {
		minutes, _ := strconv.Atoi(rawText[m[2]:m[3]])
		seconds, _ := strconv.Atoi(rawText[m[4]:m[5]])
		at := float64(minutes*60 + seconds)

		textEnd := len(rawText)
		if i+1 < len(matches) {
			textEnd = matches[i+1][0]
		}
		text := strings.TrimSpace(rawText[m[1]:textEnd])

		segEnd := at + lastSegmentDuration
		if i+1 < len(matches) {
			nm := matches[i+1]
			nextMinutes, _ := strconv.Atoi(rawText[nm[2]:nm[3]])
			nextSeconds, _ := strconv.Atoi(rawText[nm[4]:nm[5]])
			segEnd = float64(nextMinutes*60 + nextSeconds)
		}

		segments = append(segments, legacySegment{start: at, end: segEnd, text: text})
	}
	return segments
}
