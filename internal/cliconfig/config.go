package cliconfig

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/pkg/log"
)

// DefaultName is the service name used when none is configured.
const DefaultName = "consvc"

// Config holds CLI configuration for consvc.
type Config struct {
	Name string

	LogLevel string
	LogFile  string

	StatusDir string

	WaitHint        time.Duration
	ShutdownTimeout time.Duration
	Heartbeat       time.Duration

	// UnhandledResult is returned for optional controls without a handler.
	UnhandledResult int

	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Name:            DefaultName,
		LogLevel:        log.DefaultLevel.String(),
		LogFile:         "", // Derived from Name during Validate
		StatusDir:       filepath.Join(os.TempDir(), DefaultName),
		WaitHint:        10 * time.Second,
		ShutdownTimeout: 20 * time.Second,
		Heartbeat:       5 * time.Second,
		WatchConfig:     true,
	}
}

// DefaultLogPath returns the log file used in managed mode when none is
// configured: <temp dir>/<name>.log.
func DefaultLogPath(name string) string {
	return filepath.Join(os.TempDir(), name+".log")
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	if c.LogFile == "" {
		c.LogFile = DefaultLogPath(c.Name)
	}
	if c.StatusDir == "" {
		c.StatusDir = filepath.Join(os.TempDir(), c.Name)
	}

	if c.WaitHint <= 0 {
		return fmt.Errorf("%w: wait hint must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("%w: heartbeat must be positive", domain.ErrInvalidConfig)
	}
	if c.UnhandledResult < 0 || int64(c.UnhandledResult) > math.MaxUint32 {
		return fmt.Errorf("%w: unhandled result out of range", domain.ErrInvalidConfig)
	}

	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.DefaultLevel
	}
	return l
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero is a valid value.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Zero and negative values are kept for Validate to judge.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
