package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"quip/internal/config"
)

func setupDirs(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	configHome, dataHome := t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("QUIP_JOURNAL_ENABLED", "false")
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		quiet = false
	})
	return filepath.Join(configHome, "quip"), filepath.Join(dataHome, "quip")
}

func TestConfigInit_ReplacesCorruptFile(t *testing.T) {
	configDir, _ := setupDirs(t)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := config.LoadFile(); err == nil {
		t.Fatal("expected the corrupt file to fail to parse")
	}

	rootCmd.SetArgs([]string{"config", "init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init error: %v", err)
	}

	got, err := config.LoadFile()
	if err != nil {
		t.Fatalf("LoadFile after init error: %v", err)
	}
	if got != config.Default() {
		t.Errorf("config after init = %+v, want defaults", got)
	}
}

func TestClear_EmptyHistoryDirectory(t *testing.T) {
	_, dataDir := setupDirs(t)
	dir := filepath.Join(dataDir, "history")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"clear", "-q"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("history dir should be removed, stat err = %v", err)
	}
}
