// Package snapshot caches the last known pipeline results per project so a
// page reload does not recompute transcript stats. The cache is purely an
// optimization: every persistence error is swallowed and absence is always
// a correct answer, the caller just recomputes.
package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/clipforge/clipforge-agent/internal/transcript"
)

// DefaultTTL is how long a snapshot stays valid.
const DefaultTTL = 5 * time.Minute

// Stats are the derived numbers shown on the project dashboard.
type Stats struct {
	TotalWords      int     `json:"total_words"`
	DurationSeconds float64 `json:"duration_seconds"`
	ClipCount       int     `json:"clip_count"`
}

// Stages flags which pipeline stages have completed for the project.
type Stages struct {
	Transcribed    bool `json:"transcribed"`
	Analyzed       bool `json:"analyzed"`
	ClipsGenerated bool `json:"clips_generated"`
}

// Snapshot is the cached aggregate outcome of one pipeline run.
type Snapshot struct {
	Transcript transcript.Transcript `json:"transcript"`
	Stats      Stats                 `json:"stats"`
	Stages     Stages                `json:"stages"`
	CachedAt   int64                 `json:"cached_at_ms"`
}

// Persistence is the best-effort key-value collaborator backing the cache.
// Get returns the empty string for an absent key.
type Persistence interface {
	GetCache(ctx context.Context, key string) (string, error)
	SetCache(ctx context.Context, key, value string) error
	DeleteCache(ctx context.Context, key string) error
}

type Store struct {
	kv     Persistence
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewStore(kv Persistence, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{kv: kv, ttl: ttl, logger: logger, now: time.Now}
}

// Load returns the cached snapshot for a project, or nil when there is
// none, it has expired, or the persistence layer failed. An expired entry
// is deleted as a side effect of the check.
func (s *Store) Load(ctx context.Context, projectID string) *Snapshot {
	raw, err := s.kv.GetCache(ctx, cacheKey(projectID))
	if err != nil {
		s.debug("snapshot read failed", projectID, err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.debug("snapshot decode failed", projectID, err)
		return nil
	}

	age := s.now().UnixMilli() - snap.CachedAt
	if age > s.ttl.Milliseconds() {
		if err := s.kv.DeleteCache(ctx, cacheKey(projectID)); err != nil {
			s.debug("stale snapshot delete failed", projectID, err)
		}
		return nil
	}
	return &snap
}

// Save overwrites the project's snapshot unconditionally, stamping the
// current time. Failures are swallowed.
func (s *Store) Save(ctx context.Context, projectID string, snap Snapshot) {
	snap.CachedAt = s.now().UnixMilli()

	raw, err := json.Marshal(snap)
	if err != nil {
		s.debug("snapshot encode failed", projectID, err)
		return
	}
	if err := s.kv.SetCache(ctx, cacheKey(projectID), string(raw)); err != nil {
		s.debug("snapshot write failed", projectID, err)
	}
}

func (s *Store) debug(msg, projectID string, err error) {
	if s.logger != nil {
		s.logger.Debug(msg, "project_id", projectID, "error", err)
	}
}

func cacheKey(projectID string) string {
	return "snapshot:" + projectID
}
