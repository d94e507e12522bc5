package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Name            string `toml:"name"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	StatusDir       string `toml:"status_dir"`
	WaitHint        string `toml:"wait_hint"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	Heartbeat       string `toml:"heartbeat"`
	UnhandledResult *int   `toml:"unhandled_result"`
	WatchConfig     *bool  `toml:"watch_config"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.consvc/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".consvc", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("name", fc.Name, &cfg.Name)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("status-dir", fc.StatusDir, &cfg.StatusDir)

	if err := s.setDuration("wait-hint", fc.WaitHint, &cfg.WaitHint); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("heartbeat", fc.Heartbeat, &cfg.Heartbeat); err != nil {
		return err
	}

	s.setInt("unhandled-result", fc.UnhandledResult, &cfg.UnhandledResult)
	s.setBool("watch-config", fc.WatchConfig, &cfg.WatchConfig)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
