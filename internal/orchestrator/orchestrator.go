// Package orchestrator drives a clip's render lifecycle: it packages
// caption data into a render request, submits it to the render service,
// and polls the job status until the clip reaches a terminal state.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clipforge/clipforge-agent/internal/clip"
	"github.com/clipforge/clipforge-agent/internal/renderer"
	"github.com/clipforge/clipforge-agent/internal/timecode"
	"github.com/clipforge/clipforge-agent/internal/transcript"
	"github.com/google/uuid"
)

// StyleDefaults are the hard rendering constants: the size-name to pixel
// font-size table and the accent color used for the active word. The
// active-word highlight ignores the style's own HighlightColor so every
// rendered clip carries the product accent.
type StyleDefaults struct {
	FontSizes      map[string]int
	HighlightColor string
	PlaceholderURL string
}

// DefaultStyles returns the production style constants.
func DefaultStyles() StyleDefaults {
	return StyleDefaults{
		FontSizes: map[string]int{
			clip.SizeSmall:  60,
			clip.SizeMedium: 80,
			clip.SizeLarge:  100,
		},
		HighlightColor: "#FFD700",
		PlaceholderURL: "https://cdn.clipforge.dev/demo/placeholder.mp4",
	}
}

// Options configures the polling protocol and the simulated-render
// fallback.
type Options struct {
	PollInterval   time.Duration
	MaxAttempts    int
	SimulatedDelay time.Duration
	Styles         StyleDefaults
}

// DefaultOptions bounds one render wait at PollInterval * MaxAttempts
// (5 minutes with the defaults).
func DefaultOptions() Options {
	return Options{
		PollInterval:   5 * time.Second,
		MaxAttempts:    60,
		SimulatedDelay: 3 * time.Second,
		Styles:         DefaultStyles(),
	}
}

type loopHandle struct {
	jobID  string
	cancel context.CancelFunc
}

// Orchestrator owns every in-flight polling loop. Each clip has at most
// one active loop; re-submitting a render cancels the previous loop for
// that clip before starting a new one.
type Orchestrator struct {
	renderer renderer.Renderer
	repo     clip.Repository
	logger   *slog.Logger
	opts     Options

	rootCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup

	mu    sync.Mutex
	loops map[string]loopHandle
}

func New(r renderer.Renderer, repo clip.Repository, logger *slog.Logger, opts Options) *Orchestrator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultOptions().PollInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	if opts.SimulatedDelay <= 0 {
		opts.SimulatedDelay = DefaultOptions().SimulatedDelay
	}
	if opts.Styles.FontSizes == nil {
		opts.Styles = DefaultStyles()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		renderer: r,
		repo:     repo,
		logger:   logger,
		opts:     opts,
		rootCtx:  ctx,
		stop:     cancel,
		loops:    make(map[string]loopHandle),
	}
}

// Close cancels all in-flight polling loops and waits for them to exit.
func (o *Orchestrator) Close() {
	o.stop()
	o.wg.Wait()
}

// SubmitRender builds and submits a render request for the clip and starts
// the polling loop. On submission failure it falls back to a simulated
// render that resolves done with a placeholder URL after a fixed delay, so
// the renderer being unreachable never surfaces as a hard failure.
// Returns the job id driving the clip's new rendering state.
func (o *Orchestrator) SubmitRender(ctx context.Context, c *clip.Clip, words []transcript.Word, style clip.CaptionStyle, platform string) (string, error) {
	if c.State == clip.StateRendering {
		return "", fmt.Errorf("%w: clip %s is already rendering", clip.ErrInvalidTransition, c.ID)
	}

	req, err := o.buildRequest(c, words, style, platform)
	if err != nil {
		return "", err
	}

	// A stale loop for this clip must not race the new submission.
	o.cancelLoop(c.ID)

	jobID, err := o.renderer.Submit(ctx, req)
	if err != nil {
		o.logger.Warn("render submission failed, falling back to simulated render",
			"clip_id", c.ID, "error", err)
		return o.simulateRender(c)
	}

	if err := c.SubmitRender(jobID); err != nil {
		return "", err
	}
	if err := o.repo.UpdateRenderState(ctx, c); err != nil {
		return "", fmt.Errorf("persist render submission: %w", err)
	}

	o.startLoop(c, jobID)
	return jobID, nil
}

func (o *Orchestrator) buildRequest(c *clip.Clip, words []transcript.Word, style clip.CaptionStyle, platform string) (renderer.Request, error) {
	start, err := timecode.ParseClipTime(c.Spec.StartTime)
	if err != nil {
		return renderer.Request{}, err
	}
	end, err := timecode.ParseClipTime(c.Spec.EndTime)
	if err != nil {
		return renderer.Request{}, err
	}

	fontSize, ok := o.opts.Styles.FontSizes[style.Size]
	if !ok {
		fontSize = o.opts.Styles.FontSizes[clip.SizeMedium]
	}

	return renderer.Request{
		Platform: platform,
		Start:    float64(start),
		End:      float64(end),
		Words:    words,
		Style: renderer.StylePayload{
			FontFamily:      style.FontFamily,
			FontSize:        fontSize,
			TextColor:       style.TextColor,
			HighlightColor:  o.opts.Styles.HighlightColor,
			BackgroundColor: style.BackgroundColor,
			Position:        style.Position,
			AnimationStyle:  style.AnimationStyle,
		},
	}, nil
}

// simulateRender is the degraded/demo path: the clip still goes through
// rendering and resolves done, just without a real job behind it.
func (o *Orchestrator) simulateRender(c *clip.Clip) (string, error) {
	jobID := "sim-" + uuid.NewString()

	if err := c.SubmitRender(jobID); err != nil {
		return "", err
	}
	if err := o.repo.UpdateRenderState(o.rootCtx, c); err != nil {
		return "", fmt.Errorf("persist simulated submission: %w", err)
	}

	loopCtx, cancel := context.WithCancel(o.rootCtx)
	o.track(c.ID, loopHandle{jobID: jobID, cancel: cancel})

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer o.untrack(c.ID, jobID)

		select {
		case <-loopCtx.Done():
			return
		case <-time.After(o.opts.SimulatedDelay):
		}
		o.resolve(c, clip.Outcome{Done: true, URL: o.opts.Styles.PlaceholderURL})
	}()

	return jobID, nil
}

func (o *Orchestrator) startLoop(c *clip.Clip, jobID string) {
	loopCtx, cancel := context.WithCancel(o.rootCtx)
	o.track(c.ID, loopHandle{jobID: jobID, cancel: cancel})

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer o.untrack(c.ID, jobID)
		o.pollLoop(loopCtx, c, jobID)
	}()
}

// pollLoop queries the job status every PollInterval until a terminal
// status or attempt exhaustion. Query errors are transient: they are
// logged, do not consume the attempt budget, and do not stop the loop.
func (o *Orchestrator) pollLoop(ctx context.Context, c *clip.Clip, jobID string) {
	log := o.logger.With("clip_id", c.ID, "job_id", jobID)

	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			log.Debug("polling loop canceled")
			return
		case <-ticker.C:
		}

		status, err := o.renderer.JobStatus(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("render status check failed", "error", err)
			continue
		}

		if status.Succeeded() {
			log.Info("render completed", "url", status.URL)
			o.resolve(c, clip.Outcome{Done: true, URL: status.URL})
			return
		}
		if status.State == renderer.StatusFailed {
			reason := status.ErrorMessage
			if reason == "" {
				reason = "render failed"
			}
			log.Warn("render failed", "reason", reason)
			o.resolve(c, clip.Outcome{Reason: reason})
			return
		}

		attempts++
		if attempts >= o.opts.MaxAttempts {
			log.Warn("render polling exhausted", "attempts", attempts)
			o.resolve(c, clip.Outcome{Reason: "timeout"})
			return
		}
	}
}

func (o *Orchestrator) resolve(c *clip.Clip, outcome clip.Outcome) {
	if err := c.ResolveRender(outcome); err != nil {
		// Only a mis-sequenced caller can get here; surface it loudly.
		o.logger.Error("render resolution rejected", "clip_id", c.ID, "error", err)
		return
	}
	if err := o.repo.UpdateRenderState(o.rootCtx, c); err != nil {
		o.logger.Error("failed to persist render outcome", "clip_id", c.ID, "error", err)
	}
}

func (o *Orchestrator) track(clipID string, h loopHandle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loops[clipID] = h
}

func (o *Orchestrator) untrack(clipID, jobID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if h, ok := o.loops[clipID]; ok && h.jobID == jobID {
		delete(o.loops, clipID)
	}
}

func (o *Orchestrator) cancelLoop(clipID string) {
	o.mu.Lock()
	h, ok := o.loops[clipID]
	if ok {
		delete(o.loops, clipID)
	}
	o.mu.Unlock()
	if ok {
		h.cancel()
	}
}

// ActiveLoops reports how many polling loops are currently tracked.
func (o *Orchestrator) ActiveLoops() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.loops)
}
