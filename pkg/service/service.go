package service

import (
	"context"
	"fmt"

	"github.com/bft-labs/consvc/internal/adapters/console"
	"github.com/bft-labs/consvc/internal/adapters/fs"
	"github.com/bft-labs/consvc/internal/adapters/scm"
	"github.com/bft-labs/consvc/internal/app"
	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
)

// Core types.
type (
	// Service is the lifecycle handle passed to workers and hooks.
	Service = app.Lifecycle

	// Worker is the service body. Run returns when the service should stop.
	Worker = app.Worker

	// WorkerFunc adapts a function to Worker.
	WorkerFunc = app.WorkerFunc

	// Plugin extends a run with supporting functionality.
	Plugin = app.Plugin

	// PluginConfig is passed to plugins during initialization.
	PluginConfig = app.PluginConfig

	// StateEmitter observes state changes.
	StateEmitter = app.StateEmitter

	// Channel is a control channel between the host and the service.
	Channel = ports.Channel

	// Dispatcher receives control events from a Channel.
	Dispatcher = ports.Dispatcher

	// Supervisor hosts managed-mode runs.
	Supervisor = ports.Supervisor

	// StatusRepository persists status snapshots.
	StatusRepository = ports.StatusRepository
)

// Optional control handlers.
type (
	StopHandler            = app.StopHandler
	PauseHandler           = app.PauseHandler
	ContinueHandler        = app.ContinueHandler
	InterrogateHandler     = app.InterrogateHandler
	PreShutdownHandler     = app.PreShutdownHandler
	ShutdownHandler        = app.ShutdownHandler
	DeviceEventHandler     = app.DeviceEventHandler
	HardwareProfileHandler = app.HardwareProfileHandler
	SessionChangeHandler   = app.SessionChangeHandler
	PowerEventHandler      = app.PowerEventHandler
	UnknownHandler         = app.UnknownHandler
)

// Status and control types.
type (
	State               = domain.State
	Accepts             = domain.Accepts
	Control             = domain.Control
	Event               = domain.Event
	Status              = domain.Status
	Snapshot            = domain.Snapshot
	Mode                = domain.Mode
	ExitCode            = domain.ExitCode
	PreShutdownInfo     = domain.PreShutdownInfo
	SessionNotification = domain.SessionNotification
)

// Service states.
const (
	StateStopped         = domain.StateStopped
	StateStartPending    = domain.StateStartPending
	StateStopPending     = domain.StateStopPending
	StateRunning         = domain.StateRunning
	StateContinuePending = domain.StateContinuePending
	StatePausePending    = domain.StatePausePending
	StatePaused          = domain.StatePaused
)

// Accepted controls.
const (
	AcceptStop                  = domain.AcceptStop
	AcceptPauseAndContinue      = domain.AcceptPauseAndContinue
	AcceptShutdown              = domain.AcceptShutdown
	AcceptParamChange           = domain.AcceptParamChange
	AcceptNetBindChange         = domain.AcceptNetBindChange
	AcceptHardwareProfileChange = domain.AcceptHardwareProfileChange
	AcceptPowerEvent            = domain.AcceptPowerEvent
	AcceptSessionChange         = domain.AcceptSessionChange
	AcceptPreShutdown           = domain.AcceptPreShutdown
)

// Execution modes.
const (
	ModeManaged     = domain.ModeManaged
	ModeInteractive = domain.ModeInteractive
)

// Exit codes.
const (
	ExitOK              = domain.ExitOK
	ExitFailure         = domain.ExitFailure
	ExitPending         = domain.ExitPending
	ExitServiceSpecific = domain.ExitServiceSpecific
)

// Errors.
var (
	ErrAlreadyRunning    = domain.ErrAlreadyRunning
	ErrRegistration      = domain.ErrRegistration
	ErrNotSupported      = domain.ErrNotSupported
	ErrInvalidTransition = domain.ErrInvalidTransition
	ErrInvalidConfig     = domain.ErrInvalidConfig
)

// New creates a service named name running w. The service is created in
// StateStopped; call Start to run it.
func New(name string, w Worker, opts ...Option) (*Service, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: service name is required", domain.ErrInvalidConfig)
	}
	if w == nil {
		return nil, fmt.Errorf("%w: worker is required", domain.ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	supervisor := o.supervisor
	if supervisor == nil {
		supervisor = scm.NewSupervisor(o.logger)
	}
	newConsole := o.console
	if newConsole == nil {
		out := o.output
		logger := o.logger
		newConsole = func() ports.Channel { return console.NewChannel(logger, out) }
	}
	statuses := o.statuses
	if statuses == nil && o.statusDir != "" {
		statuses = fs.NewStatusFileRepository(o.statusDir, name)
	}

	return app.NewLifecycle(app.Config{
		Name:            name,
		Worker:          w,
		Logger:          o.logger,
		Supervisor:      supervisor,
		Console:         newConsole,
		WaitHint:        o.waitHint,
		ShutdownTimeout: o.shutdownTimeout,
		UnhandledResult: o.unhandledResult,
		Plugins:         o.plugins,
		Emitters:        o.emitters,
		Statuses:        statuses,
	}), nil
}

// ReadStatus returns the last snapshot written by the service name under
// dir. An empty snapshot means the service never ran there.
func ReadStatus(ctx context.Context, dir, name string) (Snapshot, error) {
	return fs.NewStatusFileRepository(dir, name).Load(ctx)
}

// ParseMode selects the execution mode from the startup arguments.
func ParseMode(args []string) Mode {
	return app.ParseMode(args)
}

// IsDebugFlag reports whether arg selects interactive mode.
func IsDebugFlag(arg string) bool {
	return app.IsDebugFlag(arg)
}

// StripModeFlags returns args without the interactive-mode flags.
func StripModeFlags(args []string) []string {
	return app.StripModeFlags(args)
}

// ExitCodeOf maps an error to a process exit code.
func ExitCodeOf(err error) ExitCode {
	return domain.ExitCodeOf(err)
}
