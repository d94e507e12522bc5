package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "CONSVC_"

// ApplyEnvConfig applies configuration from environment variables (CONSVC_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("name", os.Getenv(EnvPrefix+"NAME"), &cfg.Name)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv(EnvPrefix+"LOG_FILE"), &cfg.LogFile)
	s.setString("status-dir", os.Getenv(EnvPrefix+"STATUS_DIR"), &cfg.StatusDir)

	if err := s.setDuration("wait-hint", os.Getenv(EnvPrefix+"WAIT_HINT"), &cfg.WaitHint); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv(EnvPrefix+"SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("heartbeat", os.Getenv(EnvPrefix+"HEARTBEAT"), &cfg.Heartbeat); err != nil {
		return err
	}

	if err := s.setIntFromString("unhandled-result", os.Getenv(EnvPrefix+"UNHANDLED_RESULT"), &cfg.UnhandledResult); err != nil {
		return err
	}

	s.setBoolFromString("watch-config", os.Getenv(EnvPrefix+"WATCH_CONFIG"), &cfg.WatchConfig)

	return nil
}
