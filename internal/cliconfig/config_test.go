package cliconfig

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/pkg/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != DefaultName {
		t.Errorf("Name = %v, want %v", cfg.Name, DefaultName)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("LogLevel = %v, want warning", cfg.LogLevel)
	}
	if cfg.WaitHint != 10*time.Second {
		t.Errorf("WaitHint = %v, want 10s", cfg.WaitHint)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 20s", cfg.ShutdownTimeout)
	}
	if cfg.UnhandledResult != 0 {
		t.Errorf("UnhandledResult = %v, want 0", cfg.UnhandledResult)
	}
	if !cfg.WatchConfig {
		t.Error("WatchConfig = false, want true")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.LogFile = "/tmp/x.log"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing name", mutate: func(c *Config) { c.Name = "" }, wantErr: true},
		{name: "numeric log level", mutate: func(c *Config) { c.LogLevel = "5000" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "zero wait hint", mutate: func(c *Config) { c.WaitHint = 0 }, wantErr: true},
		{name: "negative shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = -time.Second }, wantErr: true},
		{name: "zero heartbeat", mutate: func(c *Config) { c.Heartbeat = 0 }, wantErr: true},
		{name: "negative unhandled result", mutate: func(c *Config) { c.UnhandledResult = -1 }, wantErr: true},
		{name: "unhandled result", mutate: func(c *Config) { c.UnhandledResult = 120 }},
		{name: "large unhandled result", mutate: func(c *Config) { c.UnhandledResult = math.MaxInt32 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "heartbeat"
	cfg.StatusDir = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if want := filepath.Join(os.TempDir(), "heartbeat.log"); cfg.LogFile != want {
		t.Errorf("LogFile = %v, want %v", cfg.LogFile, want)
	}
	if want := filepath.Join(os.TempDir(), "heartbeat"); cfg.StatusDir != want {
		t.Errorf("StatusDir = %v, want %v", cfg.StatusDir, want)
	}
}

func TestConfig_Level(t *testing.T) {
	cfg := Config{LogLevel: "debug"}
	if cfg.Level() != log.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}

	cfg.LogLevel = "garbage"
	if cfg.Level() != log.DefaultLevel {
		t.Errorf("Level() = %v, want default", cfg.Level())
	}
}
