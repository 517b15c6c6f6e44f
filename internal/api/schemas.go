package api

import (
	"time"

	"github.com/clipforge/clipforge-agent/internal/clip"
	"github.com/clipforge/clipforge-agent/internal/snapshot"
	"github.com/clipforge/clipforge-agent/internal/transcript"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
	AgentID string `json:"agent_id"`
}

type StatusResponse struct {
	State        string `json:"state"`
	LastError    string `json:"last_error,omitempty"`
	ActiveLoops  int    `json:"active_render_loops"`
	StylePresets int    `json:"style_presets"`
}

type CreateClipRequest struct {
	Title     string   `json:"title"`
	HookText  string   `json:"hook_text,omitempty"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Platforms []string `json:"platforms,omitempty"`
	Score     int      `json:"score"`
}

type CreateClipResponse struct {
	ClipID string `json:"clip_id"`
}

// TranscriptPayload carries transcript data from the web app. Segments may
// lack word-level timing, in which case RawText with inline [MM:SS]
// markers drives legacy caption extraction.
type TranscriptPayload struct {
	Segments []transcript.Segment `json:"segments,omitempty"`
	RawText  string               `json:"raw_text,omitempty"`
}

type RenderRequest struct {
	Platform    string             `json:"platform"`
	StylePreset string             `json:"style_preset,omitempty"`
	Style       *clip.CaptionStyle `json:"style,omitempty"`
	Transcript  TranscriptPayload  `json:"transcript"`
}

type RenderResponse struct {
	JobID string `json:"job_id"`
	State string `json:"state"`
}

type CaptionsRequest struct {
	Transcript TranscriptPayload `json:"transcript"`
}

type SaveSnapshotRequest struct {
	Transcript TranscriptPayload `json:"transcript"`
	Stats      snapshot.Stats    `json:"stats"`
	Stages     snapshot.Stages   `json:"stages"`
}

type StylesResponse struct {
	Presets []string `json:"presets"`
	Default string   `json:"default"`
}

type ClipResponse struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	HookText  string   `json:"hook_text,omitempty"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Platforms []string `json:"platforms,omitempty"`
	Score     int      `json:"score"`
	State     string   `json:"state"`
	JobID     string   `json:"render_job_id,omitempty"`
	RenderURL string   `json:"render_url,omitempty"`
	LastError string   `json:"last_error,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type ClipsResponse struct {
	Clips []ClipResponse `json:"clips"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ClipToResponse(c *clip.Clip) ClipResponse {
	return ClipResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Title:     c.Spec.Title,
		HookText:  c.Spec.HookText,
		StartTime: c.Spec.StartTime,
		EndTime:   c.Spec.EndTime,
		Platforms: c.Spec.Platforms,
		Score:     c.Spec.Score,
		State:     c.State,
		JobID:     c.JobID,
		RenderURL: c.RenderURL,
		LastError: c.LastError,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
