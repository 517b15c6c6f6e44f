package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipforge/clipforge-agent/internal/api"
	"github.com/clipforge/clipforge-agent/internal/clip"
	"github.com/clipforge/clipforge-agent/internal/config"
	"github.com/clipforge/clipforge-agent/internal/db"
	"github.com/clipforge/clipforge-agent/internal/logging"
	"github.com/clipforge/clipforge-agent/internal/orchestrator"
	"github.com/clipforge/clipforge-agent/internal/renderer"
	"github.com/clipforge/clipforge-agent/internal/snapshot"
	"github.com/clipforge/clipforge-agent/internal/styles"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting clipforge agent", "version", config.Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := clip.NewRepository(database.Conn())

	agentID, err := ensureAgentID(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure agent ID: %w", err)
	}

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                   CLIPFORGE AGENT v0.1.0                  ║")
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    http://127.0.0.1:%-27d ║\n", cfg.Port())
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Printf("║  Agent ID:   %-45s ║\n", agentID[:16]+"...")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	clipSvc := clip.NewService(repo, logger)

	var rend renderer.Renderer
	if cfg.RendererURL() != "" && cfg.RendererToken() != "" {
		rend = renderer.NewHTTPRenderer(cfg.RendererURL(), cfg.RendererToken(), logger)
		logger.Info("render service enabled", "base_url", cfg.RendererURL())
	} else {
		rend = renderer.NewStubRenderer(3, logger)
		logger.Info("render service not configured, using stub renderer")
	}

	presets := styles.Builtin()
	if path := cfg.StylePresetsPath(); path != "" {
		presets, err = styles.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load style presets: %w", err)
		}
		logger.Info("loaded style presets", "path", path, "presets", len(presets.Names()))
	}

	orchOpts := orchestrator.DefaultOptions()
	orchOpts.PollInterval = cfg.PollInterval()
	orchOpts.MaxAttempts = cfg.MaxPollAttempts()
	orch := orchestrator.New(rend, repo, logger, orchOpts)

	snapshots := snapshot.NewStore(repo, cfg.SnapshotTTL(), logger)

	apiServer := api.NewServer(api.ServerConfig{
		Port:         cfg.Port(),
		ClipService:  clipSvc,
		Repository:   repo,
		Orchestrator: orch,
		Styles:       presets,
		Snapshots:    snapshots,
		Logger:       logger,
		StartTime:    startTime,
		AgentID:      agentID,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	logger.Info("initiating graceful shutdown")
	orch.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func ensureAgentID(repo clip.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "agent_id")
	if err == nil && existing != "" {
		return existing, nil
	}

	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	agentID := hex.EncodeToString(idBytes)

	if err := repo.SetConfig(ctx, "agent_id", agentID); err != nil {
		return "", err
	}

	return agentID, nil
}

func ensureAuthToken(repo clip.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "auth_token")
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}

	return token, nil
}
