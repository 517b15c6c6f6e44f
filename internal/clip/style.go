package clip

import "fmt"

// Caption position values.
const (
	PositionTop    = "top"
	PositionCenter = "center"
	PositionBottom = "bottom"
)

// Caption size values.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Caption animation values.
const (
	AnimationFade    = "fade"
	AnimationSlide   = "slide"
	AnimationPop     = "pop"
	AnimationKaraoke = "karaoke"
)

// CaptionStyle is the read-only styling input to a render request.
type CaptionStyle struct {
	FontFamily      string `json:"font_family" yaml:"font_family"`
	TextColor       string `json:"text_color" yaml:"text_color"`
	HighlightColor  string `json:"highlight_color" yaml:"highlight_color"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
	Position        string `json:"position" yaml:"position"`
	Size            string `json:"size" yaml:"size"`
	AnimationStyle  string `json:"animation_style" yaml:"animation_style"`
}

// Validate checks the enum fields. Empty values are allowed; the style
// preset layer fills them in before a render is submitted.
func (s CaptionStyle) Validate() error {
	switch s.Position {
	case "", PositionTop, PositionCenter, PositionBottom:
	default:
		return fmt.Errorf("invalid caption position %q", s.Position)
	}
	switch s.Size {
	case "", SizeSmall, SizeMedium, SizeLarge:
	default:
		return fmt.Errorf("invalid caption size %q", s.Size)
	}
	switch s.AnimationStyle {
	case "", AnimationFade, AnimationSlide, AnimationPop, AnimationKaraoke:
	default:
		return fmt.Errorf("invalid animation style %q", s.AnimationStyle)
	}
	return nil
}
