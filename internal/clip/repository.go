package clip

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type Repository interface {
	CreateClip(ctx context.Context, c *Clip) error
	GetClip(ctx context.Context, id string) (*Clip, error)
	ListClips(ctx context.Context, projectID string) ([]*Clip, error)
	CountClips(ctx context.Context, projectID string) (int, error)
	UpdateRenderState(ctx context.Context, c *Clip) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error

	GetCache(ctx context.Context, key string) (string, error)
	SetCache(ctx context.Context, key, value string) error
	DeleteCache(ctx context.Context, key string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateClip(ctx context.Context, c *Clip) error {
	platforms, err := json.Marshal(c.Spec.Platforms)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO clips (id, project_id, title, hook_text, start_time, end_time, platforms, score,
			state, job_id, render_url, last_error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.ProjectID, c.Spec.Title, nullString(c.Spec.HookText), c.Spec.StartTime, c.Spec.EndTime,
		string(platforms), c.Spec.Score, c.State, nullString(c.JobID), nullString(c.RenderURL),
		nullString(c.LastError), c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetClip(ctx context.Context, id string) (*Clip, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, title, hook_text, start_time, end_time, platforms, score,
			state, job_id, render_url, last_error, created_at, updated_at
		FROM clips WHERE id = ?
	`, id)
	return scanClip(row)
}

func (r *SQLiteRepository) ListClips(ctx context.Context, projectID string) ([]*Clip, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, title, hook_text, start_time, end_time, platforms, score,
			state, job_id, render_url, last_error, created_at, updated_at
		FROM clips WHERE project_id = ? ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []*Clip
	for rows.Next() {
		c, err := scanClipRow(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, c)
	}
	return clips, rows.Err()
}

func (r *SQLiteRepository) CountClips(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM clips WHERE project_id = ?", projectID).Scan(&count)
	return count, err
}

// UpdateRenderState persists the render lifecycle columns after a state
// machine transition.
func (r *SQLiteRepository) UpdateRenderState(ctx context.Context, c *Clip) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE clips SET state = ?, job_id = ?, render_url = ?, last_error = ?,
			updated_at = datetime('now') WHERE id = ?
	`, c.State, nullString(c.JobID), nullString(c.RenderURL), nullString(c.LastError), c.ID)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (r *SQLiteRepository) GetCache(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM cache WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetCache(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (r *SQLiteRepository) DeleteCache(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClip(row *sql.Row) (*Clip, error) {
	c, err := scanClipFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func scanClipRow(rows *sql.Rows) (*Clip, error) {
	return scanClipFrom(rows)
}

func scanClipFrom(row rowScanner) (*Clip, error) {
	var c Clip
	var hookText, jobID, renderURL, lastError sql.NullString
	var platforms string
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.ProjectID, &c.Spec.Title, &hookText, &c.Spec.StartTime,
		&c.Spec.EndTime, &platforms, &c.Spec.Score, &c.State, &jobID, &renderURL,
		&lastError, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.Spec.HookText = hookText.String
	c.JobID = jobID.String
	c.RenderURL = renderURL.String
	c.LastError = lastError.String
	if platforms != "" {
		if err := json.Unmarshal([]byte(platforms), &c.Spec.Platforms); err != nil {
			return nil, err
		}
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at for clip %s: %w", c.ID, err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at for clip %s: %w", c.ID, err)
	}
	return &c, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
