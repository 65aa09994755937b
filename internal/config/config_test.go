package config

import (
	"log/slog"
	"slices"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.CanvasWidth != 1280 || cfg.CanvasHeight != 720 {
		t.Errorf("Expected 1280x720 canvas, got %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.DefaultTool != "line" {
		t.Errorf("Expected default tool 'line', got '%s'", cfg.DefaultTool)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"localhost:5173", "localhost:3000"}) {
		t.Errorf("Unexpected default origins %v", cfg.AllowedOrigins)
	}
	if cfg.MDNSEnabled {
		t.Error("Expected mDNS to be disabled by default")
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.SlogLevel())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "example.com,board.local")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEFAULT_TOOL", "selection")
	t.Setenv("MDNS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if got := cfg.AllowedOrigins; !slices.Equal(got, []string{"example.com", "board.local"}) {
		t.Errorf("Unexpected origins %v", got)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", cfg.SlogLevel())
	}
	if cfg.DefaultTool != "selection" || !cfg.MDNSEnabled {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadCanvas(t *testing.T) {
	t.Setenv("CANVAS_WIDTH", "0")
	if _, err := Load(); err == nil {
		t.Fatal("Expected an error for a zero-width canvas")
	}
}

func TestLoadRejectsMalformedPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	if _, err := Load(); err == nil {
		t.Fatal("Expected an error for a non-numeric port")
	}
}

func TestSlogLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("Expected info fallback, got %v", cfg.SlogLevel())
	}
}
