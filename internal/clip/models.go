package clip

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Render lifecycle states. A clip starts idle, moves to rendering when a
// job is submitted, and ends done or failed. Re-rendering a done or failed
// clip restarts the cycle with a new job id.
const (
	StateIdle      = "idle"
	StateRendering = "rendering"
	StateDone      = "done"
	StateFailed    = "failed"
)

// ErrInvalidTransition reports a render state transition attempted out of
// order. It always indicates a caller bug, so it is surfaced, never
// swallowed.
var ErrInvalidTransition = errors.New("invalid render state transition")

// Spec describes one candidate short clip cut from a longer recording.
// StartTime and EndTime are clip-time strings ("mm:ss" or "hh:mm:ss");
// the service validates StartTime < EndTime when a clip is created.
type Spec struct {
	Title     string   `json:"title"`
	HookText  string   `json:"hook_text,omitempty"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Platforms []string `json:"platforms,omitempty"`
	Score     int      `json:"score"`
}

// Clip is a candidate short clip plus its render lifecycle. Each clip owns
// its render state exclusively; nothing is shared across clips.
type Clip struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Spec      Spec      `json:"spec"`
	State     string    `json:"state"`
	JobID     string    `json:"render_job_id,omitempty"`
	RenderURL string    `json:"render_url,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Outcome is the terminal result reported by the render service: either
// done with a URL or failed with a reason.
type Outcome struct {
	Done   bool
	URL    string
	Reason string
}

// SubmitRender transitions the clip into rendering under the given job id.
// Valid from idle, failed, or done (re-render); any other state is a
// programming error.
func (c *Clip) SubmitRender(jobID string) error {
	switch c.State {
	case StateIdle, StateFailed, StateDone:
	default:
		return fmt.Errorf("%w: submit from %q", ErrInvalidTransition, c.State)
	}
	c.State = StateRendering
	c.JobID = jobID
	c.RenderURL = ""
	c.LastError = ""
	return nil
}

// ResolveRender transitions a rendering clip to its terminal state. Valid
// only from rendering.
func (c *Clip) ResolveRender(o Outcome) error {
	if c.State != StateRendering {
		return fmt.Errorf("%w: resolve from %q", ErrInvalidTransition, c.State)
	}
	if o.Done {
		c.State = StateDone
		c.RenderURL = o.URL
		c.LastError = ""
		return nil
	}
	c.State = StateFailed
	c.LastError = o.Reason
	return nil
}

// NewID returns a fresh identifier for clips and render requests.
func NewID() string {
	return uuid.NewString()
}
