package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/pkg/log"
)

// Plugin extends a run with supporting functionality. Plugins are
// initialized in registration order once the service is StartPending and
// shut down in reverse order after the worker returns.
type Plugin interface {
	// Name returns the unique plugin identifier.
	Name() string

	// Initialize starts the plugin. ctx is cancelled when the quit signal
	// is set. Must not block.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin within the deadline of ctx.
	Shutdown(ctx context.Context) error
}

// PluginConfig is passed to plugins during initialization.
type PluginConfig struct {
	ServiceName string
	RunID       string
	Mode        domain.Mode
	Logger      log.Logger
}

func (l *Lifecycle) startPlugins() error {
	cfg := PluginConfig{
		ServiceName: l.name,
		RunID:       l.runID,
		Mode:        l.Mode(),
	}
	for i, p := range l.plugins {
		cfg.Logger = log.Tagged(l.root, p.Name())
		if err := p.Initialize(l.ctx, cfg); err != nil {
			l.shutdownPlugins(l.plugins[:i])
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		l.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}
	return nil
}

func (l *Lifecycle) stopPlugins() {
	l.shutdownPlugins(l.plugins)
}

func (l *Lifecycle) shutdownPlugins(plugins []Plugin) {
	if len(plugins) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.shutdownTimeout)
	defer cancel()

	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			l.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err),
			)
		}
	}
}
