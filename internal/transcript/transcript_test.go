package transcript

import "testing"

func TestResolve_WordLevel(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Text: "hello world", Words: []Word{
			{Text: "hello", Start: 0, End: 1},
			{Text: "world", Start: 1, End: 2},
		}},
	}

	tr := Resolve(segments, "")
	if tr.Kind != KindWordLevel {
		t.Errorf("Kind = %s, want %s", tr.Kind, KindWordLevel)
	}
}

func TestResolve_LegacyWhenNoWords(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Text: "hello world"},
	}

	tr := Resolve(segments, "[00:00] hello world")
	if tr.Kind != KindLegacyTimestamp {
		t.Errorf("Kind = %s, want %s", tr.Kind, KindLegacyTimestamp)
	}
}

func TestResolve_LegacyWhenEmpty(t *testing.T) {
	tr := Resolve(nil, "[00:00] hello")
	if tr.Kind != KindLegacyTimestamp {
		t.Errorf("Kind = %s, want %s", tr.Kind, KindLegacyTimestamp)
	}
	if tr.RawText != "[00:00] hello" {
		t.Errorf("RawText = %q, want raw input preserved", tr.RawText)
	}
}
