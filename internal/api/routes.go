package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/clipforge/clipforge-agent/internal/captions"
	"github.com/clipforge/clipforge-agent/internal/clip"
	"github.com/clipforge/clipforge-agent/internal/config"
	"github.com/clipforge/clipforge-agent/internal/export"
	"github.com/clipforge/clipforge-agent/internal/snapshot"
	"github.com/clipforge/clipforge-agent/internal/transcript"
	"github.com/go-chi/chi/v5"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Get("/styles", stylesHandler(cfg))
		r.Post("/projects/{id}/clips", createClipHandler(cfg))
		r.Get("/projects/{id}/clips", listClipsHandler(cfg))
		r.Get("/projects/{id}/snapshot", getSnapshotHandler(cfg))
		r.Put("/projects/{id}/snapshot", saveSnapshotHandler(cfg))
		r.Get("/clips/{id}", getClipHandler(cfg))
		r.Post("/clips/{id}/render", renderClipHandler(cfg))
		r.Post("/clips/{id}/captions", captionsHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: config.Version,
			UptimeS: uptime,
			AgentID: cfg.AgentID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := "idle"
		active := 0
		if cfg.Orchestrator != nil {
			active = cfg.Orchestrator.ActiveLoops()
			if active > 0 {
				state = "rendering"
			}
		}

		resp := StatusResponse{
			State:       state,
			ActiveLoops: active,
		}
		if cfg.Styles != nil {
			resp.StylePresets = len(cfg.Styles.Names())
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func stylesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, StylesResponse{
			Presets: cfg.Styles.Names(),
			Default: cfg.Styles.DefaultName(),
		})
	}
}

func createClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "id")
		if projectID == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		var req CreateClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		c, err := cfg.ClipService.CreateClip(r.Context(), projectID, clip.Spec{
			Title:     req.Title,
			HookText:  req.HookText,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Platforms: req.Platforms,
			Score:     req.Score,
		})
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusCreated, CreateClipResponse{ClipID: c.ID})
	}
}

func listClipsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "id")
		if projectID == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		clips, err := cfg.ClipService.ListClips(r.Context(), projectID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list clips", "INTERNAL_ERROR")
			return
		}

		resp := ClipsResponse{Clips: make([]ClipResponse, len(clips))}
		for i, c := range clips {
			resp.Clips[i] = ClipToResponse(c)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "clip id required", "BAD_REQUEST")
			return
		}

		c, err := cfg.ClipService.GetClip(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if c == nil {
			WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, ClipToResponse(c))
	}
}

func renderClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "clip id required", "BAD_REQUEST")
			return
		}

		var req RenderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Platform == "" {
			WriteError(w, http.StatusBadRequest, "platform is required", "BAD_REQUEST")
			return
		}

		c, err := cfg.ClipService.GetClip(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if c == nil {
			WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}

		style, err := resolveStyle(cfg, req.StylePreset, req.Style)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		start, end, err := cfg.ClipService.Window(c.Spec)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		tr := transcript.Resolve(req.Transcript.Segments, req.Transcript.RawText)
		words := captions.ExtractWords(float64(start), float64(end), tr.Segments)

		jobID, err := cfg.Orchestrator.SubmitRender(r.Context(), c, words, style, req.Platform)
		if err != nil {
			if errors.Is(err, clip.ErrInvalidTransition) {
				WriteError(w, http.StatusConflict, err.Error(), "CONFLICT")
				return
			}
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusAccepted, RenderResponse{JobID: jobID, State: clip.StateRendering})
	}
}

func resolveStyle(cfg ServerConfig, presetName string, override *clip.CaptionStyle) (clip.CaptionStyle, error) {
	if override != nil {
		if err := override.Validate(); err != nil {
			return clip.CaptionStyle{}, err
		}
		return *override, nil
	}
	if presetName != "" {
		style, ok := cfg.Styles.Get(presetName)
		if !ok {
			return clip.CaptionStyle{}, fmt.Errorf("unknown style preset %q", presetName)
		}
		return style, nil
	}
	return cfg.Styles.Default(), nil
}

func captionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "clip id required", "BAD_REQUEST")
			return
		}

		var req CaptionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		c, err := cfg.ClipService.GetClip(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if c == nil {
			WriteError(w, http.StatusNotFound, "clip not found", "NOT_FOUND")
			return
		}

		start, end, err := cfg.ClipService.Window(c.Spec)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		tr := transcript.Resolve(req.Transcript.Segments, req.Transcript.RawText)
		phrases := captions.PhrasesFor(tr, float64(start), float64(end))

		srt := export.GenerateSRT(phrases, float64(start))

		w.Header().Set("Content-Type", "application/x-subrip")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.Filename(c.Spec.Title, c.ID)))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(srt))
	}
}

func getSnapshotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "id")
		if projectID == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		snap := cfg.Snapshots.Load(r.Context(), projectID)
		if snap == nil {
			WriteError(w, http.StatusNotFound, "no cached snapshot", "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, snap)
	}
}

func saveSnapshotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "id")
		if projectID == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		var req SaveSnapshotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		tr := transcript.Resolve(req.Transcript.Segments, req.Transcript.RawText)
		cfg.Snapshots.Save(r.Context(), projectID, snapshot.Snapshot{
			Transcript: tr,
			Stats:      req.Stats,
			Stages:     req.Stages,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
