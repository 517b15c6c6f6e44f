package clip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clipforge/clipforge-agent/internal/timecode"
)

type ClipService interface {
	CreateClip(ctx context.Context, projectID string, spec Spec) (*Clip, error)
	GetClip(ctx context.Context, id string) (*Clip, error)
	ListClips(ctx context.Context, projectID string) ([]*Clip, error)
	CountClips(ctx context.Context, projectID string) (int, error)
	Window(spec Spec) (start, end int, err error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateClip validates a clip spec and stores it in the idle render state.
func (s *Service) CreateClip(ctx context.Context, projectID string, spec Spec) (*Clip, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(spec.Title) == "" {
		return nil, fmt.Errorf("clip title is required")
	}
	if spec.Score < 0 || spec.Score > 10 {
		return nil, fmt.Errorf("clip score %d out of range 0-10", spec.Score)
	}

	if _, _, err := s.Window(spec); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Clip{
		ID:        NewID(),
		ProjectID: projectID,
		Spec:      spec,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateClip(ctx, c); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("clip created", "clip_id", c.ID, "project_id", projectID,
			"start", spec.StartTime, "end", spec.EndTime)
	}
	return c, nil
}

func (s *Service) GetClip(ctx context.Context, id string) (*Clip, error) {
	return s.repo.GetClip(ctx, id)
}

func (s *Service) ListClips(ctx context.Context, projectID string) ([]*Clip, error) {
	return s.repo.ListClips(ctx, projectID)
}

func (s *Service) CountClips(ctx context.Context, projectID string) (int, error) {
	return s.repo.CountClips(ctx, projectID)
}

// Window parses the spec's clip-time strings into absolute second offsets
// and enforces start < end.
func (s *Service) Window(spec Spec) (int, int, error) {
	start, err := timecode.ParseClipTime(spec.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := timecode.ParseClipTime(spec.EndTime)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("clip start %q must be before end %q", spec.StartTime, spec.EndTime)
	}
	return start, end, nil
}
