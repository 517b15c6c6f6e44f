// Package captions turns a clip time range plus transcript data into timed
// caption output: a flat word list for word-by-word (karaoke) animation and
// grouped phrases for classic subtitle display.
package captions

import (
	"strings"

	"github.com/clipforge/clipforge-agent/internal/transcript"
)

// Phrase is a displayable run of 1-7 words with combined timing. Start is
// the first contained word's start, End the last word's end; phrases within
// one clip are non-overlapping and time-ordered.
type Phrase struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

const (
	// maxPhraseWords closes a phrase regardless of punctuation.
	maxPhraseWords = 7
	// minSentenceWords is the buffer size from which sentence-ending
	// punctuation closes a phrase.
	minSentenceWords = 4
)

// ExtractWords flattens all segment words in original order, keeping only
// words whose interval overlaps [start, end]. An empty result means the
// transcript carries no word-level data for the range; callers treat that
// as the signal to fall back to legacy phrases, not as an error.
func ExtractWords(start, end float64, segments []transcript.Segment) []transcript.Word {
	var words []transcript.Word
	for _, seg := range segments {
		for _, w := range seg.Words {
			if w.End >= start && w.Start <= end {
				words = append(words, w)
			}
		}
	}
	return words
}

// ExtractPhrases groups the words of [start, end] into phrases. A phrase
// closes when the buffer holds at least four words and the latest word ends
// in sentence punctuation, or unconditionally at seven words. Whatever
// remains at the end of the range is flushed as a final phrase.
func ExtractPhrases(start, end float64, segments []transcript.Segment) []Phrase {
	words := ExtractWords(start, end, segments)

	var phrases []Phrase
	var buf []transcript.Word
	for _, w := range words {
		buf = append(buf, w)
		if len(buf) >= minSentenceWords && endsSentence(w.Text) {
			phrases = append(phrases, phraseFrom(buf))
			buf = nil
			continue
		}
		if len(buf) == maxPhraseWords {
			phrases = append(phrases, phraseFrom(buf))
			buf = nil
		}
	}
	if len(buf) > 0 {
		phrases = append(phrases, phraseFrom(buf))
	}
	return phrases
}

func endsSentence(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasSuffix(t, ".") || strings.HasSuffix(t, "?") || strings.HasSuffix(t, "!")
}

func phraseFrom(words []transcript.Word) Phrase {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.TrimSpace(w.Text))
	}
	return Phrase{
		Start: words[0].Start,
		End:   words[len(words)-1].End,
		Text:  b.String(),
	}
}

// PhrasesFor selects the caption strategy for a resolved transcript: phrase
// grouping over word timestamps when they exist, inline-marker scanning of
// the raw text otherwise. Strictly either/or per clip.
func PhrasesFor(tr transcript.Transcript, start, end float64) []Phrase {
	if tr.Kind == transcript.KindWordLevel {
		return ExtractPhrases(start, end, tr.Segments)
	}
	return LegacyPhrases(start, end, tr.RawText)
}
