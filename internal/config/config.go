package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int      `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	CanvasWidth    int      `envconfig:"CANVAS_WIDTH" default:"1280"`
	CanvasHeight   int      `envconfig:"CANVAS_HEIGHT" default:"720"`
	DefaultTool    string   `envconfig:"DEFAULT_TOOL" default:"line"`
	MDNSEnabled    bool     `envconfig:"MDNS_ENABLED" default:"false"`
	MDNSInstance   string   `envconfig:"MDNS_INSTANCE" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	return &cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
