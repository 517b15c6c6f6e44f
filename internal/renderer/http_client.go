package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RenderError represents an error response from the render service.
type RenderError struct {
	StatusCode int
	Body       string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render service error: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRetryable returns true for server errors (5xx) and network errors.
// Client errors (4xx) are considered permanent.
func (e *RenderError) IsRetryable() bool {
	return e.StatusCode >= 500
}

// HTTPRenderer talks to a real render service over HTTP with a bearer
// token. Submissions POST to /api/v1/renders; status queries GET
// /api/v1/renders/{jobID}.
type HTTPRenderer struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPRenderer(baseURL, token string, logger *slog.Logger) *HTTPRenderer {
	return &HTTPRenderer{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

func (r *HTTPRenderer) Submit(ctx context.Context, renderReq Request) (string, error) {
	body, err := json.Marshal(renderReq)
	if err != nil {
		return "", fmt.Errorf("marshal render request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/renders", r.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("X-Clipforge-Request-Id", uuid.NewString())

	r.logger.Info("submitting render",
		"url", url,
		"platform", renderReq.Platform,
		"word_count", len(renderReq.Words),
		"body_bytes", len(body),
	)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RenderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result submitResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if result.JobID == "" {
		return "", fmt.Errorf("render service returned no job id")
	}

	r.logger.Info("render submitted", "job_id", result.JobID)
	return result.JobID, nil
}

func (r *HTTPRenderer) JobStatus(ctx context.Context, jobID string) (*Status, error) {
	url := fmt.Sprintf("%s/api/v1/renders/%s", r.baseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("X-Clipforge-Request-Id", uuid.NewString())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RenderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var status Status
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &status, nil
}
