package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"quip/internal/preview"
)

const appName = "quip"

// Config represents the quip configuration.
type Config struct {
	History HistoryConfig `json:"history"`
	Preview PreviewConfig `json:"preview"`
	Journal JournalConfig `json:"journal"`
	Log     LogConfig     `json:"log"`
}

// HistoryConfig controls the clipboard history cache.
type HistoryConfig struct {
	Enabled        bool   `json:"enabled"`
	AutoCache      bool   `json:"autoCache"`
	Dir            string `json:"dir,omitempty"`
	FollowSymlinks bool   `json:"followSymlinks"`
}

// PreviewConfig sets the default preview dimensions. A negative value means
// no limit.
type PreviewConfig struct {
	Width int `json:"width"`
	Lines int `json:"lines"`
}

// JournalConfig controls the event journal.
type JournalConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// Default returns a Config with all defaults applied. Paths are left empty
// and resolved by Load.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Enabled: true,
		},
		Preview: PreviewConfig{
			Width: preview.DefaultWidth,
			Lines: preview.DefaultLines,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// PreviewOptions converts the configured dimensions to formatter options.
func (c Config) PreviewOptions() preview.Options {
	return preview.Options{
		Width:    c.Preview.Width,
		Lines:    c.Preview.Lines,
		Ellipsis: true,
	}
}

// ConfigDir returns the platform-appropriate config directory for quip.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "AppData", "Roaming", appName), nil
	default:
		return filepath.Join(home, ".config", appName), nil
	}
}

// DataDir returns the directory holding history and the journal.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		return filepath.Join(home, "AppData", "Local", appName), nil
	default:
		return filepath.Join(home, ".local", "share", appName), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile reads the config file over the defaults. A missing file yields
// Default().
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file and returns its path.
func Save(cfg Config) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags and uses the same keys as SetField.
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(&cfg, key, value); err != nil {
			return Config{}, err
		}
	}
	if err := resolvePaths(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envKeys = map[string]string{
	"QUIP_HISTORY_DIR":     "history.dir",
	"QUIP_HISTORY_ENABLED": "history.enabled",
	"QUIP_AUTO_CACHE":      "history.autoCache",
	"QUIP_PREVIEW_WIDTH":   "preview.width",
	"QUIP_PREVIEW_LINES":   "preview.lines",
	"QUIP_JOURNAL_ENABLED": "journal.enabled",
	"QUIP_JOURNAL_PATH":    "journal.path",
	"QUIP_LOG_LEVEL":       "log.level",
}

func mergeEnv(cfg *Config) error {
	for env, key := range envKeys {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func resolvePaths(cfg *Config) error {
	if cfg.History.Dir != "" && (cfg.Journal.Path != "" || !cfg.Journal.Enabled) {
		return nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return err
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = filepath.Join(dataDir, "history")
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join(dataDir, "journal.db")
	}
	return nil
}

// Keys lists every key SetField accepts.
func Keys() []string {
	return []string{
		"history.enabled",
		"history.autoCache",
		"history.dir",
		"history.followSymlinks",
		"preview.width",
		"preview.lines",
		"journal.enabled",
		"journal.path",
		"log.level",
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "history.enabled":
		return setBool(&cfg.History.Enabled, key, value)
	case "history.autoCache":
		return setBool(&cfg.History.AutoCache, key, value)
	case "history.dir":
		cfg.History.Dir = value
	case "history.followSymlinks":
		return setBool(&cfg.History.FollowSymlinks, key, value)
	case "preview.width":
		return setInt(&cfg.Preview.Width, key, value)
	case "preview.lines":
		return setInt(&cfg.Preview.Lines, key, value)
	case "journal.enabled":
		return setBool(&cfg.Journal.Enabled, key, value)
	case "journal.path":
		cfg.Journal.Path = value
	case "log.level":
		cfg.Log.Level = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}
