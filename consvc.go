// Package consvc runs a worker either as a Windows service or as a console
// program, configured the same way in both modes.
//
// Example usage:
//
//	cfg := consvc.DefaultConfig()
//	cfg.Name = "heartbeat"
//	code, err := consvc.Run(cfg, "", worker, os.Args[1:])
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	}
//	os.Exit(int(code))
//
// Without arguments the process registers with the service control
// manager and logs to cfg.LogFile. With /debug it runs in the foreground,
// logs to the console, and stops on Ctrl+C.
package consvc

import (
	"context"
	"fmt"

	"github.com/bft-labs/consvc/internal/adapters/log"
	"github.com/bft-labs/consvc/internal/cliconfig"
	pkglog "github.com/bft-labs/consvc/pkg/log"
	"github.com/bft-labs/consvc/pkg/service"
	"github.com/bft-labs/consvc/plugins/configwatcher"
)

// Config holds the host configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return cliconfig.DefaultConfigPath()
}

// Run validates cfg, opens the log output for the selected mode and runs w
// until it stops. configPath, when non-empty and present, is watched for
// log level changes if cfg.WatchConfig is set. The returned code is meant
// for os.Exit.
func Run(cfg Config, configPath string, w service.Worker, args []string, opts ...service.Option) (service.ExitCode, error) {
	if err := cfg.Validate(); err != nil {
		return service.ExitCodeOf(err), err
	}

	mode := service.ParseMode(args)
	logger, closer, err := log.Open(mode, cfg.LogFile, cfg.Level())
	if err != nil {
		return service.ExitCodeOf(err), err
	}
	defer closer.Close()

	logger.Info("configuration",
		pkglog.String("name", cfg.Name),
		pkglog.String("mode", mode.String()),
		pkglog.String("log_level", cfg.LogLevel),
		pkglog.String("status_dir", cfg.StatusDir),
		pkglog.Duration("wait_hint", cfg.WaitHint),
		pkglog.Int("unhandled_result", cfg.UnhandledResult),
	)

	base := []service.Option{
		service.WithLogger(logger),
		service.WithWaitHint(cfg.WaitHint),
		service.WithShutdownTimeout(cfg.ShutdownTimeout),
		service.WithUnhandledResult(uint32(cfg.UnhandledResult)),
		service.WithStatusDir(cfg.StatusDir),
	}
	if cfg.WatchConfig && configPath != "" && cliconfig.FileExists(configPath) {
		base = append(base, configwatcher.WithConfigWatcher(configwatcher.Config{
			Path:   configPath,
			Levels: logger,
		}))
	}

	svc, err := service.New(cfg.Name, w, append(base, opts...)...)
	if err != nil {
		return service.ExitCodeOf(err), err
	}

	code := svc.Start(args)
	if err := svc.Err(); err != nil {
		return code, err
	}
	if code != service.ExitOK {
		return code, fmt.Errorf("%s exited with code %d", cfg.Name, code)
	}
	return code, nil
}

// ReadStatus returns the last status snapshot of the service configured
// by cfg.
func ReadStatus(ctx context.Context, cfg Config) (service.Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return service.Snapshot{}, err
	}
	return service.ReadStatus(ctx, cfg.StatusDir, cfg.Name)
}
