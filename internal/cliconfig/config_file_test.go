package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	falseVal := false
	code := 120
	zero := 0

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Name:            "svc",
				LogLevel:        "debug",
				LogFile:         "/var/log/svc.log",
				StatusDir:       "/run/svc",
				WaitHint:        "30s",
				ShutdownTimeout: "1m",
				Heartbeat:       "2s",
				UnhandledResult: &code,
				WatchConfig:     &falseVal,
			},
			changed: map[string]bool{},
			initial: Config{WatchConfig: true},
			expected: Config{
				Name:            "svc",
				LogLevel:        "debug",
				LogFile:         "/var/log/svc.log",
				StatusDir:       "/run/svc",
				WaitHint:        30 * time.Second,
				ShutdownTimeout: time.Minute,
				Heartbeat:       2 * time.Second,
				UnhandledResult: 120,
				WatchConfig:     false,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Name:     "file-svc",
				LogLevel: "error",
			},
			changed: map[string]bool{"name": true},
			initial: Config{
				Name:     "flag-svc",
				LogLevel: "warning",
			},
			expected: Config{
				Name:     "flag-svc", // unchanged because flag was set
				LogLevel: "error",
			},
		},
		{
			name:       "empty file leaves defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "zero unhandled result overrides",
			fileConfig: FileConfig{UnhandledResult: &zero},
			changed:    map[string]bool{},
			initial:    Config{UnhandledResult: 120},
			expected:   Config{UnhandledResult: 0},
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{WaitHint: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
name = "heartbeat"
log_level = "info"
wait_hint = "15s"
unhandled_result = 120
watch_config = false
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Name != "heartbeat" {
		t.Errorf("Name = %v, want heartbeat", fc.Name)
	}
	if fc.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", fc.LogLevel)
	}
	if fc.WaitHint != "15s" {
		t.Errorf("WaitHint = %v, want 15s", fc.WaitHint)
	}
	if fc.UnhandledResult == nil || *fc.UnhandledResult != 120 {
		t.Errorf("UnhandledResult = %v, want 120", fc.UnhandledResult)
	}
	if fc.WatchConfig == nil || *fc.WatchConfig != false {
		t.Errorf("WatchConfig = %v, want false", fc.WatchConfig)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
name = "svc"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".consvc") {
		t.Errorf("DefaultConfigPath() = %v, should contain .consvc", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
