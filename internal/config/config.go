// Package config reads server settings from the environment.
//
// An optional .env file in the working directory is loaded first; variables
// already set in the process environment win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/mapcolor-mcp/internal/coloring"
	"github.com/ironsheep/mapcolor-mcp/internal/region"
	"github.com/ironsheep/mapcolor-mcp/internal/render"
)

// Environment variable names.
const (
	EnvLogLevel        = "MAPCOLOR_MCP_LOG_LEVEL"
	EnvLogFormat       = "MAPCOLOR_MCP_LOG_FORMAT"
	EnvTolerance       = "MAPCOLOR_TOLERANCE"
	EnvMinRegionPixels = "MAPCOLOR_MIN_REGION_PIXELS"
	EnvMapWidth        = "MAPCOLOR_MAP_WIDTH"
	EnvMapHeight       = "MAPCOLOR_MAP_HEIGHT"
	EnvTitle           = "MAPCOLOR_TITLE"
)

// Config holds the server settings.
type Config struct {
	LogLevel  logrus.Level
	LogFormat string // "text" or "json"

	// Tolerance is the per-channel flood-fill threshold.
	Tolerance int
	// MinRegionPixels is the smallest paintable region.
	MinRegionPixels int

	// MapWidth and MapHeight scale every loaded map to a fixed size when
	// both are positive. Zero keeps the native size.
	MapWidth  int
	MapHeight int

	// Title is the instruction line drawn on rendered frames.
	Title string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:        logrus.InfoLevel,
		LogFormat:       "text",
		Tolerance:       region.DefaultTolerance,
		MinRegionPixels: coloring.MinRegionPixels,
		Title:           render.DefaultTitle,
	}
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv(EnvLogLevel); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if v := strings.ToLower(getenv(EnvLogFormat)); v != "" {
		if v != "text" && v != "json" {
			return cfg, fmt.Errorf("%s: unknown format %q", EnvLogFormat, v)
		}
		cfg.LogFormat = v
	}

	ints := []struct {
		name string
		dst  *int
		min  int
	}{
		{EnvTolerance, &cfg.Tolerance, 1},
		{EnvMinRegionPixels, &cfg.MinRegionPixels, 1},
		{EnvMapWidth, &cfg.MapWidth, 0},
		{EnvMapHeight, &cfg.MapHeight, 0},
	}
	for _, f := range ints {
		v := getenv(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", f.name, err)
		}
		if n < f.min {
			return cfg, fmt.Errorf("%s: must be at least %d, got %d", f.name, f.min, n)
		}
		*f.dst = n
	}

	if v := getenv(EnvTitle); v != "" {
		cfg.Title = v
	}

	return cfg, nil
}

// NewLogger builds the process logger. Output goes to stderr because stdout
// carries the MCP protocol.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
