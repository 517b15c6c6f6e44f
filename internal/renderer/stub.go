package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// StubRenderer is an in-memory renderer for development and tests. Each
// submitted job reports processing for a configurable number of status
// queries, then succeeds with a fake URL.
type StubRenderer struct {
	mu           sync.Mutex
	checksToDone int
	checks       map[string]int
	logger       *slog.Logger
}

func NewStubRenderer(checksToDone int, logger *slog.Logger) *StubRenderer {
	return &StubRenderer{
		checksToDone: checksToDone,
		checks:       make(map[string]int),
		logger:       logger,
	}
}

func (s *StubRenderer) Submit(ctx context.Context, req Request) (string, error) {
	jobID := uuid.NewString()
	s.mu.Lock()
	s.checks[jobID] = 0
	s.mu.Unlock()
	s.logger.Info("renderer stub: render submitted", "job_id", jobID, "platform", req.Platform)
	return jobID, nil
}

func (s *StubRenderer) JobStatus(ctx context.Context, jobID string) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.checks[jobID]
	if !ok {
		return nil, fmt.Errorf("unknown job %s", jobID)
	}
	s.checks[jobID] = n + 1

	if n+1 >= s.checksToDone {
		return &Status{
			State: StatusSucceeded,
			URL:   fmt.Sprintf("https://stub.clipforge.local/renders/%s.mp4", jobID),
		}, nil
	}
	return &Status{State: StatusProcessing}, nil
}
