// Package transcript defines the transcript shapes the agent consumes from
// the transcription service. Transcripts arrive either with word-level
// timestamps (the modern shape) or as raw text with inline [MM:SS] markers
// (the legacy shape); the distinction is resolved once here so downstream
// code can branch on a tag instead of re-inspecting the data.
package transcript

// Word is a single transcript word with start/end offsets in seconds.
// End >= Start always holds for words produced by the transcription
// service; the agent never mutates them.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one utterance of the transcript. Words is empty for
// transcripts produced before word-level timestamps were available.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Kind tags which caption strategy a transcript supports.
type Kind string

const (
	// KindWordLevel means segments carry word-level timestamps.
	KindWordLevel Kind = "word_level"
	// KindLegacyTimestamp means only raw text with inline [MM:SS]
	// markers is available.
	KindLegacyTimestamp Kind = "legacy_timestamp"
)

// Transcript is the resolved input to the caption segmenter.
type Transcript struct {
	Kind     Kind      `json:"kind"`
	Segments []Segment `json:"segments,omitempty"`
	RawText  string    `json:"raw_text,omitempty"`
}

// Resolve tags a transcript by data availability: word-level whenever the
// first segment carries a non-empty word list, legacy otherwise. The
// choice is made once at this boundary; callers never merge strategies
// within one clip.
func Resolve(segments []Segment, rawText string) Transcript {
	if len(segments) > 0 && len(segments[0].Words) > 0 {
		return Transcript{Kind: KindWordLevel, Segments: segments, RawText: rawText}
	}
	return Transcript{Kind: KindLegacyTimestamp, Segments: segments, RawText: rawText}
}
