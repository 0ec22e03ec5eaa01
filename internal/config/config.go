// Package config loads the optional .gloxrc.yaml that tunes REPL
// ergonomics and the recursion-depth guard. Absence of the file is not an
// error: every field has a zero-value-safe default.
//
// Grounded on CWBudde-go-dws's YAML-based configuration loading
// (internal/semantic and its CLI config path), swapped to
// github.com/goccy/go-yaml per that teacher's own dependency.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	DefaultPrompt       = "> "
	DefaultHistoryFile  = ".glox_history"
	DefaultMaxCallDepth = 2000
)

// Config holds the user-tunable knobs read from .gloxrc.yaml.
type Config struct {
	Prompt         string `yaml:"prompt"`
	HistoryFile    string `yaml:"history_file"`
	NativesEnabled bool   `yaml:"natives_enabled"`
	MaxCallDepth   int    `yaml:"max_call_depth"`
}

// fileConfig mirrors Config but with pointer fields, so an absent YAML key
// is distinguishable from an explicit zero value (notably `natives_enabled:
// false`).
type fileConfig struct {
	Prompt         *string `yaml:"prompt"`
	HistoryFile    *string `yaml:"history_file"`
	NativesEnabled *bool   `yaml:"natives_enabled"`
	MaxCallDepth   *int    `yaml:"max_call_depth"`
}

// Default returns the zero-value-safe defaults used when no config file is
// found or a field is left unset in the file.
func Default() Config {
	return Config{
		Prompt:         DefaultPrompt,
		HistoryFile:    DefaultHistoryFile,
		NativesEnabled: true,
		MaxCallDepth:   DefaultMaxCallDepth,
	}
}

// Load searches the current directory, then $HOME, for a .gloxrc.yaml and
// merges it over Default(). A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := find()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var override fileConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg, err
	}
	applyOverride(&cfg, override)
	return cfg, nil
}

func find() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(wd, ".gloxrc.yaml")
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	candidate := filepath.Join(home, ".gloxrc.yaml")
	if fileExists(candidate) {
		return candidate, nil
	}
	return "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// applyOverride copies only the fields override's source file actually set.
func applyOverride(cfg *Config, override fileConfig) {
	if override.Prompt != nil {
		cfg.Prompt = *override.Prompt
	}
	if override.HistoryFile != nil {
		cfg.HistoryFile = *override.HistoryFile
	}
	if override.MaxCallDepth != nil {
		cfg.MaxCallDepth = *override.MaxCallDepth
	}
	if override.NativesEnabled != nil {
		cfg.NativesEnabled = *override.NativesEnabled
	}
}
