package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MediaDir       string  `koanf:"media_dir"`       // default folder offered when importing clips
	TrackHeight    int     `koanf:"track_height"`    // rows per timeline lane (default: 2)
	TrailingMargin float64 `koanf:"trailing_margin"` // editable seconds kept past the last segment

	// EDL export settings
	Export ExportConfig `koanf:"export"`

	// Auto-arrange settings
	AutoLayout AutoLayoutConfig `koanf:"auto_layout"`
}

// ExportConfig holds EDL export configuration.
type ExportConfig struct {
	FPS float64 `koanf:"fps"` // timecode frame rate (default: 30)
	Dir string  `koanf:"dir"` // destination folder (default: cwd)
}

// AutoLayoutConfig holds auto-arrange configuration.
type AutoLayoutConfig struct {
	Gap       float64 `koanf:"gap"`       // seconds inserted between placed clips (default: 0)
	Alternate *bool   `koanf:"alternate"` // round-robin clips across tracks of a kind (default: false)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.MediaDir != "" {
		cfg.MediaDir = expandPath(cfg.MediaDir)
	}
	if cfg.Export.Dir != "" {
		cfg.Export.Dir = expandPath(cfg.Export.Dir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/montage/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "montage", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetTrackHeight returns the lane height with defaults and bounds applied.
func (c *Config) GetTrackHeight() int {
	if c.TrackHeight < 1 || c.TrackHeight > 6 {
		return 2
	}
	return c.TrackHeight
}

// GetTrailingMargin returns the trailing margin with the default applied.
func (c *Config) GetTrailingMargin() float64 {
	if c.TrailingMargin <= 0 {
		return 5
	}
	return c.TrailingMargin
}

// GetExportConfig returns the export configuration with defaults applied.
func (c *Config) GetExportConfig() ExportConfig {
	cfg := c.Export
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	return cfg
}

// GetAutoLayoutConfig returns the auto-arrange configuration with defaults
// applied.
func (c *Config) GetAutoLayoutConfig() AutoLayoutConfig {
	cfg := c.AutoLayout
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	if cfg.Alternate == nil {
		f := false
		cfg.Alternate = &f
	}
	return cfg
}
