package export

import (
	"strings"
	"testing"

	"github.com/clipforge/clipforge-agent/internal/captions"
)

func TestGenerateSRT(t *testing.T) {
	phrases := []captions.Phrase{
		{Start: 65, End: 66.5, Text: "Ithinkthisworks."},
		{Start: 67, End: 67.9, Text: "Reallygreat"},
	}

	srt := GenerateSRT(phrases, 65)

	want := "1\n" +
		"00:00:00,000 --> 00:00:01,500\n" +
		"Ithinkthisworks.\n\n" +
		"2\n" +
		"00:00:02,000 --> 00:00:02,900\n" +
		"Reallygreat\n\n"
	if srt != want {
		t.Errorf("GenerateSRT() =\n%q\nwant\n%q", srt, want)
	}
}

func TestGenerateSRT_Empty(t *testing.T) {
	if srt := GenerateSRT(nil, 0); srt != "" {
		t.Errorf("GenerateSRT(nil) = %q, want empty", srt)
	}
}

func TestGenerateSRT_ClampsNegativeStart(t *testing.T) {
	phrases := []captions.Phrase{
		{Start: 4.5, End: 6, Text: "overlapping lead-in"},
	}

	srt := GenerateSRT(phrases, 5)

	if !strings.Contains(srt, "00:00:00,000 --> 00:00:01,000") {
		t.Errorf("GenerateSRT() = %q, cue should clamp at zero", srt)
	}
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{59.9995, "00:01:00,000"},
		{65.25, "00:01:05,250"},
		{3723.042, "01:02:03,042"},
	}

	for _, tt := range tests {
		if got := formatSRTTime(tt.input); got != tt.want {
			t.Errorf("formatSRTTime(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
