package captions

import (
	"testing"

	"github.com/clipforge/clipforge-agent/internal/transcript"
)

func wordLevelSegments() []transcript.Segment {
	return []transcript.Segment{
		{Start: 0, End: 1.5, Text: "I think this works.", Words: []transcript.Word{
			{Text: "I", Start: 0, End: 0.4},
			{Text: "think", Start: 0.4, End: 0.8},
			{Text: "this", Start: 0.8, End: 1.0},
			{Text: "works.", Start: 1.0, End: 1.5},
		}},
		{Start: 2, End: 2.9, Text: "Really great", Words: []transcript.Word{
			{Text: "Really", Start: 2, End: 2.4},
			{Text: "great", Start: 2.4, End: 2.9},
		}},
	}
}

func TestExtractWords_OverlapFilter(t *testing.T) {
	segments := wordLevelSegments()

	words := ExtractWords(0.5, 2.1, segments)

	want := []string{"I", "think", "this", "works.", "Really"}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i, w := range words {
		if w.Text != want[i] {
			t.Errorf("words[%d].Text = %q, want %q", i, w.Text, want[i])
		}
	}
}

func TestExtractWords_PreservesOrderAndInput(t *testing.T) {
	segments := wordLevelSegments()
	before := len(segments[0].Words)

	words := ExtractWords(0, 3, segments)

	for i := 1; i < len(words); i++ {
		if words[i].Start < words[i-1].Start {
			t.Errorf("words out of order at %d: %v after %v", i, words[i], words[i-1])
		}
	}
	if len(segments[0].Words) != before {
		t.Error("ExtractWords mutated input segments")
	}
}

func TestExtractWords_NoWordData(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 5, Text: "no word timing here"},
	}

	if words := ExtractWords(0, 5, segments); len(words) != 0 {
		t.Errorf("got %d words, want 0 for segments without word data", len(words))
	}
}

func TestExtractPhrases_SentencePunctuationAndFlush(t *testing.T) {
	segments := wordLevelSegments()

	phrases := ExtractPhrases(0, 3, segments)

	if len(phrases) != 2 {
		t.Fatalf("got %d phrases, want 2", len(phrases))
	}

	first := phrases[0]
	if first.Text != "Ithinkthisworks." {
		t.Errorf("first.Text = %q, want %q", first.Text, "Ithinkthisworks.")
	}
	if first.Start != 0 || first.End != 1.5 {
		t.Errorf("first bounds = [%v, %v], want [0, 1.5]", first.Start, first.End)
	}

	second := phrases[1]
	if second.Text != "Reallygreat" {
		t.Errorf("second.Text = %q, want %q", second.Text, "Reallygreat")
	}
	if second.Start != 2 || second.End != 2.9 {
		t.Errorf("second bounds = [%v, %v], want [2, 2.9]", second.Start, second.End)
	}
}

func TestExtractPhrases_SevenWordCap(t *testing.T) {
	var words []transcript.Word
	for i := 0; i < 16; i++ {
		words = append(words, transcript.Word{
			Text:  "word",
			Start: float64(i),
			End:   float64(i) + 0.5,
		})
	}
	segments := []transcript.Segment{{Start: 0, End: 16, Words: words}}

	phrases := ExtractPhrases(0, 16, segments)

	if len(phrases) != 3 {
		t.Fatalf("got %d phrases, want 3 (7+7+2)", len(phrases))
	}
	for i, p := range phrases {
		if n := len(p.Text) / len("word"); n > 7 {
			t.Errorf("phrases[%d] has %d words, want <= 7", i, n)
		}
	}
	if phrases[2].Start != 14 {
		t.Errorf("final phrase Start = %v, want 14", phrases[2].Start)
	}
}

func TestExtractPhrases_EarlyPunctuationDoesNotClose(t *testing.T) {
	// Punctuation only closes a phrase once the buffer holds 4+ words.
	segments := []transcript.Segment{{Start: 0, End: 3, Words: []transcript.Word{
		{Text: "No.", Start: 0, End: 0.5},
		{Text: "Not", Start: 0.5, End: 1},
		{Text: "like", Start: 1, End: 1.5},
		{Text: "that.", Start: 1.5, End: 2},
	}}}

	phrases := ExtractPhrases(0, 3, segments)

	if len(phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(phrases))
	}
	if phrases[0].Text != "No.Notlikethat." {
		t.Errorf("Text = %q, want %q", phrases[0].Text, "No.Notlikethat.")
	}
}

func TestLegacyPhrases_MarkerScan(t *testing.T) {
	raw := "[00:00] welcome to the show [00:10] today we talk about Go [00:25] thanks for watching"

	phrases := LegacyPhrases(0, 30, raw)

	if len(phrases) != 3 {
		t.Fatalf("got %d phrases, want 3", len(phrases))
	}
	if phrases[0].Start != 0 || phrases[0].End != 10 {
		t.Errorf("phrases[0] bounds = [%v, %v], want [0, 10]", phrases[0].Start, phrases[0].End)
	}
	if phrases[0].Text != "welcome to the show" {
		t.Errorf("phrases[0].Text = %q", phrases[0].Text)
	}
	// Last marker has no terminator: five-second default duration.
	if phrases[2].Start != 25 || phrases[2].End != 30 {
		t.Errorf("phrases[2] bounds = [%v, %v], want [25, 30]", phrases[2].Start, phrases[2].End)
	}
}

func TestLegacyPhrases_ClipsToRange(t *testing.T) {
	raw := "[00:00] intro [00:10] middle part [00:20] outro"

	phrases := LegacyPhrases(5, 15, raw)

	if len(phrases) != 2 {
		t.Fatalf("got %d phrases, want 2", len(phrases))
	}
	for _, p := range phrases {
		if p.Start < 5 || p.End > 15 {
			t.Errorf("phrase [%v, %v] not clipped to [5, 15]", p.Start, p.End)
		}
	}
	if phrases[0].Start != 5 || phrases[0].End != 10 {
		t.Errorf("phrases[0] bounds = [%v, %v], want [5, 10]", phrases[0].Start, phrases[0].End)
	}
	if phrases[1].Start != 10 || phrases[1].End != 15 {
		t.Errorf("phrases[1] bounds = [%v, %v], want [10, 15]", phrases[1].Start, phrases[1].End)
	}
}

func TestLegacyPhrases_SegmentEndingAtWindowStart(t *testing.T) {
	raw := "[00:00] first part [00:10] second part"

	phrases := LegacyPhrases(10, 20, raw)

	if len(phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(phrases))
	}
	if phrases[0].Text != "second part" {
		t.Errorf("phrases[0].Text = %q, want %q", phrases[0].Text, "second part")
	}
	if phrases[0].Start != 10 || phrases[0].End != 15 {
		t.Errorf("phrases[0] bounds = [%v, %v], want [10, 15]", phrases[0].Start, phrases[0].End)
	}
}

func TestLegacyPhrases_HourScaleMinutes(t *testing.T) {
	raw := "[90:00] deep into the recording"

	phrases := LegacyPhrases(5300, 5500, raw)

	if len(phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(phrases))
	}
	if phrases[0].Start != 5400 || phrases[0].End != 5405 {
		t.Errorf("bounds = [%v, %v], want [5400, 5405]", phrases[0].Start, phrases[0].End)
	}
}

func TestPhrasesFor_StrategySelection(t *testing.T) {
	wordLevel := transcript.Resolve(wordLevelSegments(), "[00:00] ignored raw text")
	phrases := PhrasesFor(wordLevel, 0, 3)
	if len(phrases) != 2 || phrases[0].Text != "Ithinkthisworks." {
		t.Errorf("word-level transcript should use phrase grouping, got %+v", phrases)
	}

	legacy := transcript.Resolve(nil, "[00:01] fallback text")
	phrases = PhrasesFor(legacy, 0, 10)
	if len(phrases) != 1 || phrases[0].Text != "fallback text" {
		t.Errorf("legacy transcript should scan markers, got %+v", phrases)
	}
	if phrases[0].Start != 1 || phrases[0].End != 6 {
		t.Errorf("legacy bounds = [%v, %v], want [1, 6]", phrases[0].Start, phrases[0].End)
	}
}
