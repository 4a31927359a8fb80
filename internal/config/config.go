// Package config holds engine configuration loaded from defaults, an
// optional YAML file and STUDYCORE_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studycore/internal/review"
)

// Config holds all engine configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the default XDG location.
	DBPath string `yaml:"db_path"`

	// Timezone is the IANA zone used to turn instants into calendar days
	// for streaks and reminders. "Local" uses the host zone.
	Timezone string `yaml:"timezone"`

	// LogMode is "dev" (console, debug) or "prod" (JSON, info).
	LogMode string `yaml:"log_mode"`

	// Ladder is the review interval ladder in days.
	Ladder []int `yaml:"ladder"`

	// MissionLimit caps the recommended mission queue. 0 means no cap.
	MissionLimit int `yaml:"mission_limit"`

	// SuccessWindow is how many recent practice events feed a concept's
	// success rate.
	SuccessWindow int `yaml:"success_window"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timezone:      "Local",
		LogMode:       "dev",
		Ladder:        append([]int(nil), review.DefaultLadder...),
		MissionLimit:  0,
		SuccessWindow: 10,
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg, err := applyEnv(cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return Load("")
}

func applyEnv(cfg Config) (Config, error) {
	if p := os.Getenv("STUDYCORE_DB"); p != "" {
		cfg.DBPath = p
	}
	if tz := os.Getenv("STUDYCORE_TZ"); tz != "" {
		cfg.Timezone = tz
	}
	if m := os.Getenv("STUDYCORE_LOG"); m != "" {
		cfg.LogMode = m
	}
	if l := os.Getenv("STUDYCORE_LADDER"); l != "" {
		ladder, err := ParseLadder(l)
		if err != nil {
			return Config{}, fmt.Errorf("STUDYCORE_LADDER: %w", err)
		}
		cfg.Ladder = ladder
	}
	if v := os.Getenv("STUDYCORE_MISSION_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("STUDYCORE_MISSION_LIMIT: %w", err)
		}
		cfg.MissionLimit = n
	}
	if v := os.Getenv("STUDYCORE_SUCCESS_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("STUDYCORE_SUCCESS_WINDOW: %w", err)
		}
		cfg.SuccessWindow = n
	}
	return cfg, nil
}

// ParseLadder parses a comma-separated list of day intervals, e.g. "1,3,7,14".
func ParseLadder(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad interval %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if err := review.Ladder(c.Ladder).Validate(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.MissionLimit < 0 {
		return fmt.Errorf("mission_limit must not be negative, got %d", c.MissionLimit)
	}
	if c.SuccessWindow <= 0 {
		return fmt.Errorf("success_window must be positive, got %d", c.SuccessWindow)
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("unknown log mode %q", c.LogMode)
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
