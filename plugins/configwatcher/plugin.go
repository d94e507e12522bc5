// Package configwatcher reloads the log level of a running service when its
// configuration file changes.
package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/consvc/internal/cliconfig"
	"github.com/bft-labs/consvc/pkg/log"
	"github.com/bft-labs/consvc/pkg/service"
)

// Plugin watches a TOML configuration file and applies its log_level to a
// log.LevelController on every change.
type Plugin struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	levels        log.LevelController

	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the configuration file to watch.
	Path string

	// Levels receives the reloaded log level.
	Levels log.LevelController

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config watching the default configuration file.
func DefaultConfig(levels log.LevelController) Config {
	return Config{
		Path:          cliconfig.DefaultConfigPath(),
		Levels:        levels,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		levels:        cfg.Levels,
		logger:        log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the configuration file.
func (p *Plugin) Initialize(ctx context.Context, cfg service.PluginConfig) error {
	if cfg.Logger != nil {
		p.logger = cfg.Logger
	}

	if p.path == "" || p.levels == nil {
		p.logger.Warn("config watcher disabled: no config file or level target")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace files rather than write in place.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		if err := p.Reload(); err != nil {
			p.logger.Warn("config reload failed", log.String("path", p.path), log.Err(err))
		}
	})
}

// Reload reads the configuration file and applies its log level. A file
// without log_level leaves the level unchanged.
func (p *Plugin) Reload() error {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		return err
	}
	if fc.LogLevel == "" {
		return nil
	}
	level, err := log.ParseLevel(fc.LogLevel)
	if err != nil {
		return err
	}

	previous := p.levels.Level()
	if previous == level {
		return nil
	}
	p.levels.SetLevel(level)
	p.logger.Info("log level changed",
		log.String("from", previous.String()),
		log.String("to", level.String()),
	)
	return nil
}

// Ensure Plugin implements service.Plugin.
var _ service.Plugin = (*Plugin)(nil)
