// Package renderer is the client for the external video render service.
// The service accepts a render submission for one clip and exposes an
// asynchronous job status endpoint the orchestrator polls.
package renderer

import (
	"context"

	"github.com/clipforge/clipforge-agent/internal/transcript"
)

// Job status vocabulary reported by the render service. Anything outside
// the terminal values counts as in progress.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusDone       = "done"
	StatusFailed     = "failed"
)

// Renderer submits render requests and answers status queries.
type Renderer interface {
	Submit(ctx context.Context, req Request) (jobID string, err error)
	JobStatus(ctx context.Context, jobID string) (*Status, error)
}

// Request is one render submission: the platform tag, the clip's absolute
// time range, the timed words to animate, and resolved style parameters.
type Request struct {
	Platform string            `json:"platform"`
	Start    float64           `json:"start_seconds"`
	End      float64           `json:"end_seconds"`
	Words    []transcript.Word `json:"words"`
	Style    StylePayload      `json:"style"`
}

// StylePayload is the wire shape of caption styling. FontSize is in
// pixels, already resolved from the small/medium/large size names.
type StylePayload struct {
	FontFamily      string `json:"font_family"`
	FontSize        int    `json:"font_size"`
	TextColor       string `json:"text_color"`
	HighlightColor  string `json:"highlight_color"`
	BackgroundColor string `json:"background_color"`
	Position        string `json:"position"`
	AnimationStyle  string `json:"animation_style"`
}

// Status is one answer to a job status query.
type Status struct {
	State        string `json:"status"`
	URL          string `json:"url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Terminal reports whether the status ends the polling protocol.
// Succeeded requires a result URL to count as terminal success.
func (s *Status) Terminal() bool {
	return s.Succeeded() || s.State == StatusFailed
}

// Succeeded reports a successful terminal status with a usable URL.
func (s *Status) Succeeded() bool {
	return (s.State == StatusSucceeded || s.State == StatusDone) && s.URL != ""
}
