// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: locating the per-user
// data directory, reading config.yaml and .env from it, applying environment
// overrides, and writing config.yaml back.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"verse-notes/internal/logger"
)

const (
	appName             = "verse_notes"
	configFileName      = "config.yaml"
	dotenvFileName      = ".env"
	defaultNotesFile    = "bible_notes.json"
	defaultHistoryFile  = ".verse_repl_history"
	defaultRequestLimit = 30 * time.Second
)

// ErrMissingAPIURL is returned by Validate when no verse API endpoint is configured.
var ErrMissingAPIURL = errors.New("api_url is not configured")

// Config represents the application configuration after all sources are merged.
type Config struct {
	// APIURL is the verse lookup endpoint (env: API_URL)
	APIURL string `yaml:"api_url,omitempty"`

	// APIKey is sent verbatim in the Authorization header (env: API_KEY)
	APIKey string `yaml:"api_key,omitempty"`

	// File selects the translation/module on the API side (env: FILE)
	File string `yaml:"file,omitempty"`

	// NotesFile is the JSON notes document, relative to the data directory unless absolute
	NotesFile string `yaml:"notes_file,omitempty"`

	// HistoryFile stores REPL input history, relative to the data directory unless absolute
	HistoryFile string `yaml:"history_file,omitempty"`

	// WrapWidth wraps verse text at this many columns; 0 disables wrapping
	WrapWidth int `yaml:"wrap_width,omitempty"`

	// Timeout bounds each verse API request
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// LogLevel is one of debug, info, warn, error (env: VERSE_NOTES_LOG_LEVEL)
	LogLevel string `yaml:"log_level,omitempty"`

	// DataDir is where the files above live. Not persisted.
	DataDir string `yaml:"-"`
}

// API holds the settings the verse client needs.
type API struct {
	URL     string
	Key     string
	File    string
	Timeout time.Duration
}

// API returns the verse client settings.
func (c Config) API() API {
	return API{URL: c.APIURL, Key: c.APIKey, File: c.File, Timeout: c.Timeout}
}

// Validate checks that the settings needed to query verses are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("%w: set API_URL in %s or api_url in %s",
			ErrMissingAPIURL, filepath.Join(c.DataDir, dotenvFileName), filepath.Join(c.DataDir, configFileName))
	}
	return nil
}

// DefaultDataDir returns the OS-specific data directory:
//   - macOS: ~/Library/Application Support/verse_notes
//   - Linux: $XDG_DATA_HOME/verse_notes, or ~/.local/share/verse_notes
//   - others: ~/.verse_notes_data
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return dataDirFor(runtime.GOOS, homeDir, os.Getenv), nil
}

func dataDirFor(goos, homeDir string, getenv func(string) string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", appName)
	case "linux":
		if xdg := getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		return filepath.Join(homeDir, ".local", "share", appName)
	default:
		return filepath.Join(homeDir, "."+appName+"_data")
	}
}

// EnsureDataDir creates dir if needed. If it cannot be created the current
// directory is used instead, so the tool still runs.
func EnsureDataDir(dir string) string {
	if err := os.MkdirAll(dir, 0750); err != nil { // rwxr-x---
		logger.Warn("Could not create data directory, using current directory", "dir", dir, "error", err)
		return "."
	}
	return dir
}

// ReadFile loads only config.yaml from dataDir. A missing file yields a zero Config.
func ReadFile(dataDir string) (Config, error) {
	configPath := filepath.Join(dataDir, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{DataDir: dataDir}, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	cfg.DataDir = dataDir
	return cfg, nil
}

// SaveFile writes cfg to config.yaml in its data directory.
func SaveFile(cfg Config) error {
	configPath := filepath.Join(cfg.DataDir, configFileName)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw------- (0600); the file may hold the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}
	return nil
}

// Load merges configuration from, lowest to highest precedence: config.yaml
// in dataDir, .env in dataDir, and the process environment. Unset paths and
// the request timeout get defaults. The process environment is not modified.
func Load(dataDir string) (Config, error) {
	cfg, err := ReadFile(dataDir)
	if err != nil {
		return Config{}, err
	}

	envPath := filepath.Join(dataDir, dotenvFileName)
	if _, statErr := os.Stat(envPath); statErr == nil {
		values, err := godotenv.Read(envPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", envPath, err)
		}
		cfg.applyEnv(func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		})
		logger.Debug("Loaded .env file", "path", envPath, "keys", len(values))
	}

	cfg.applyEnv(os.LookupEnv)

	if cfg.NotesFile == "" {
		cfg.NotesFile = defaultNotesFile
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaultHistoryFile
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestLimit
	}

	if cfg.NotesFile, err = cfg.resolveDataPath(cfg.NotesFile); err != nil {
		return Config{}, err
	}
	if cfg.HistoryFile, err = cfg.resolveDataPath(cfg.HistoryFile); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from a key lookup. Empty values are ignored.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, field *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}
	set("API_URL", &c.APIURL)
	set("API_KEY", &c.APIKey)
	set("FILE", &c.File)
	set("VERSE_NOTES_LOG_LEVEL", &c.LogLevel)
}

// resolveDataPath expands "~/" and anchors relative paths in the data directory.
func (c Config) resolveDataPath(path string) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(resolved) {
		return resolved, nil
	}
	return filepath.Join(c.DataDir, resolved), nil
}

// ResolvePath expands a leading "~/" to the user's home directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
