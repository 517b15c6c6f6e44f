package clip

import (
	"errors"
	"testing"
)

func TestSubmitRender_FromIdle(t *testing.T) {
	c := &Clip{State: StateIdle}

	if err := c.SubmitRender("job-1"); err != nil {
		t.Fatalf("SubmitRender() error = %v", err)
	}
	if c.State != StateRendering {
		t.Errorf("State = %s, want %s", c.State, StateRendering)
	}
	if c.JobID != "job-1" {
		t.Errorf("JobID = %s, want job-1", c.JobID)
	}
}

func TestSubmitRender_FromRendering(t *testing.T) {
	c := &Clip{State: StateRendering, JobID: "job-1"}

	err := c.SubmitRender("job-2")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("SubmitRender() error = %v, want ErrInvalidTransition", err)
	}
	if c.JobID != "job-1" {
		t.Errorf("JobID = %s, rejected submit must not mutate", c.JobID)
	}
}

func TestSubmitRender_RerenderClearsURL(t *testing.T) {
	c := &Clip{State: StateDone, JobID: "job-1", RenderURL: "https://cdn/clip.mp4"}

	if err := c.SubmitRender("job-2"); err != nil {
		t.Fatalf("SubmitRender() error = %v", err)
	}
	if c.RenderURL != "" {
		t.Errorf("RenderURL = %q, want cleared on re-render", c.RenderURL)
	}
	if c.JobID != "job-2" {
		t.Errorf("JobID = %s, want job-2", c.JobID)
	}
}

func TestSubmitRender_FromFailed(t *testing.T) {
	c := &Clip{State: StateFailed, LastError: "renderer exploded"}

	if err := c.SubmitRender("job-2"); err != nil {
		t.Fatalf("SubmitRender() error = %v", err)
	}
	if c.State != StateRendering {
		t.Errorf("State = %s, want %s", c.State, StateRendering)
	}
	if c.LastError != "" {
		t.Errorf("LastError = %q, want cleared on retry", c.LastError)
	}
}

func TestResolveRender_Done(t *testing.T) {
	c := &Clip{State: StateRendering, JobID: "job-1"}

	if err := c.ResolveRender(Outcome{Done: true, URL: "https://cdn/clip.mp4"}); err != nil {
		t.Fatalf("ResolveRender() error = %v", err)
	}
	if c.State != StateDone {
		t.Errorf("State = %s, want %s", c.State, StateDone)
	}
	if c.RenderURL != "https://cdn/clip.mp4" {
		t.Errorf("RenderURL = %q", c.RenderURL)
	}
}

func TestResolveRender_Failed(t *testing.T) {
	c := &Clip{State: StateRendering, JobID: "job-1"}

	if err := c.ResolveRender(Outcome{Reason: "encoder crashed"}); err != nil {
		t.Fatalf("ResolveRender() error = %v", err)
	}
	if c.State != StateFailed {
		t.Errorf("State = %s, want %s", c.State, StateFailed)
	}
	if c.LastError != "encoder crashed" {
		t.Errorf("LastError = %q", c.LastError)
	}
}

func TestResolveRender_FromIdle(t *testing.T) {
	c := &Clip{State: StateIdle}

	err := c.ResolveRender(Outcome{Done: true, URL: "https://cdn/clip.mp4"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("ResolveRender() error = %v, want ErrInvalidTransition", err)
	}
}

func TestResolveRender_Twice(t *testing.T) {
	c := &Clip{State: StateRendering}

	if err := c.ResolveRender(Outcome{Done: true, URL: "u"}); err != nil {
		t.Fatalf("first ResolveRender() error = %v", err)
	}
	if err := c.ResolveRender(Outcome{Reason: "late failure"}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second ResolveRender() error = %v, want ErrInvalidTransition", err)
	}
}

func TestCaptionStyle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		style   CaptionStyle
		wantErr bool
	}{
		{"empty", CaptionStyle{}, false},
		{"full valid", CaptionStyle{Position: PositionBottom, Size: SizeMedium, AnimationStyle: AnimationKaraoke}, false},
		{"bad position", CaptionStyle{Position: "middle"}, true},
		{"bad size", CaptionStyle{Size: "huge"}, true},
		{"bad animation", CaptionStyle{AnimationStyle: "bounce"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.style.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
