package service

import (
	"io"
	"os"
	"time"

	"github.com/bft-labs/consvc/pkg/log"
)

// Option configures optional behavior of a Service.
type Option func(*options)

type options struct {
	logger          log.Logger
	supervisor      Supervisor
	console         func() Channel
	output          io.Writer
	waitHint        time.Duration
	shutdownTimeout time.Duration
	unhandledResult uint32
	plugins         []Plugin
	emitters        []StateEmitter
	statuses        StatusRepository
	statusDir       string
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		output: os.Stdout,
	}
}

// WithLogger sets the logger. If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSupervisor replaces the service manager used in managed mode.
func WithSupervisor(s Supervisor) Option {
	return func(o *options) {
		o.supervisor = s
	}
}

// WithConsole replaces the interactive-mode channel factory.
func WithConsole(newChannel func() Channel) Option {
	return func(o *options) {
		o.console = newChannel
	}
}

// WithOutput sets where the interactive-mode notice is printed.
// Default: os.Stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithWaitHint sets the wait hint reported in pending states.
// Default: 10 seconds
func WithWaitHint(d time.Duration) Option {
	return func(o *options) {
		o.waitHint = d
	}
}

// WithShutdownTimeout bounds plugin shutdown after the worker returns.
// Default: 20 seconds
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		o.shutdownTimeout = d
	}
}

// WithUnhandledResult sets the result returned for optional controls the
// worker has no handler for. Default: 0
func WithUnhandledResult(code uint32) Option {
	return func(o *options) {
		o.unhandledResult = code
	}
}

// WithPlugin registers a plugin. Plugins are initialized in registration
// order and shut down in reverse order.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, p)
	}
}

// WithStateEmitter registers an observer of state changes.
func WithStateEmitter(e StateEmitter) Option {
	return func(o *options) {
		o.emitters = append(o.emitters, e)
	}
}

// WithStatusRepository persists a snapshot on every state change.
func WithStatusRepository(r StatusRepository) Option {
	return func(o *options) {
		o.statuses = r
	}
}

// WithStatusDir writes <dir>/<name>.status.json on every state change.
// Ignored when WithStatusRepository is also given.
func WithStatusDir(dir string) Option {
	return func(o *options) {
		o.statusDir = dir
	}
}
