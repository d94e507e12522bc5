package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
	"github.com/bft-labs/consvc/pkg/log"
)

// ShutdownTimeout is the default time plugins get to shut down after the
// worker returns.
const ShutdownTimeout = 20 * time.Second

// active is the lifecycle currently registered in this process. The host
// routes controls to a single handler per process.
var active atomic.Pointer[Lifecycle]

// Config wires a Lifecycle to its worker and infrastructure.
type Config struct {
	Name   string
	Worker Worker
	Logger log.Logger

	// Supervisor hosts managed-mode runs.
	Supervisor ports.Supervisor
	// Console builds the interactive-mode channel.
	Console func() ports.Channel

	WaitHint        time.Duration
	ShutdownTimeout time.Duration

	// UnhandledResult is returned for optional controls (pre-shutdown,
	// device, hardware profile, session, power) the worker has no hook for.
	UnhandledResult uint32

	Plugins  []Plugin
	Emitters []StateEmitter
	Statuses ports.StatusRepository
}

// Lifecycle is the composite lifecycle object of a service run: status,
// accepted controls, exit code and quit signal. One run per instance.
type Lifecycle struct {
	name            string
	worker          Worker
	root            log.Logger
	logger          log.Logger
	dispatchLog     log.Logger
	reporter        *Reporter
	quit            *Latch
	supervisor      ports.Supervisor
	newConsole      func() ports.Channel
	plugins         []Plugin
	shutdownTimeout time.Duration
	unhandled       uint32
	runID           string
	started         atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	mode     domain.Mode
	args     []string
	exitCode domain.ExitCode
	err      error
}

// NewLifecycle creates a lifecycle in StateStopped.
func NewLifecycle(cfg Config) *Lifecycle {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = ShutdownTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &Lifecycle{
		name:            cfg.Name,
		worker:          cfg.Worker,
		root:            logger,
		logger:          log.Tagged(logger, "lifecycle"),
		dispatchLog:     log.Tagged(logger, "dispatch"),
		quit:            NewLatch(),
		supervisor:      cfg.Supervisor,
		newConsole:      cfg.Console,
		plugins:         cfg.Plugins,
		shutdownTimeout: cfg.ShutdownTimeout,
		unhandled:       cfg.UnhandledResult,
		runID:           uuid.NewString(),
		ctx:             ctx,
		cancel:          cancel,
		exitCode:        domain.ExitPending,
	}

	emitters := append([]StateEmitter(nil), cfg.Emitters...)
	if cfg.Statuses != nil {
		emitters = append(emitters, &statusRecorder{lifecycle: l, repo: cfg.Statuses})
	}
	l.reporter = NewReporter(log.Tagged(logger, "reporter"), cfg.WaitHint, emitters...)
	return l
}

// Start selects the execution mode from args (program name excluded),
// registers with the matching channel and blocks until the run completes.
// It returns the exit code for the process.
func (l *Lifecycle) Start(args []string) domain.ExitCode {
	if !l.started.CompareAndSwap(false, true) {
		l.logger.Error("service failed", log.Err(domain.ErrAlreadyRunning))
		return domain.ExitCodeOf(domain.ErrAlreadyRunning)
	}
	if !active.CompareAndSwap(nil, l) {
		l.fail(domain.ErrAlreadyRunning)
		return l.ExitCode()
	}
	defer active.CompareAndSwap(l, nil)

	mode := ParseMode(args)
	l.mu.Lock()
	l.mode = mode
	l.mu.Unlock()

	l.logger.Info("starting service",
		log.String("name", l.name),
		log.String("mode", mode.String()),
		log.String("run_id", l.runID),
	)

	if mode == domain.ModeInteractive {
		if l.newConsole == nil {
			l.fail(fmt.Errorf("%w: no console channel", domain.ErrRegistration))
			return l.ExitCode()
		}
		l.serviceMain(args, l.newConsole())
		return l.ExitCode()
	}

	if l.supervisor == nil {
		l.fail(fmt.Errorf("%w: %w", domain.ErrRegistration, domain.ErrNotSupported))
		return l.ExitCode()
	}
	if err := l.supervisor.Serve(l.name, l.serviceMain); err != nil {
		l.fail(fmt.Errorf("%w: %w", domain.ErrRegistration, err))
	}
	return l.ExitCode()
}

// serviceMain is the entry point handed to the supervisor, and called
// directly in interactive mode.
func (l *Lifecycle) serviceMain(args []string, ch ports.Channel) {
	l.mu.Lock()
	l.args = args
	l.mu.Unlock()

	l.reporter.Attach(ch)
	if err := ch.Register(l); err != nil {
		l.fail(fmt.Errorf("%w: %w", domain.ErrRegistration, err))
		return
	}
	defer func() {
		if err := ch.Close(); err != nil {
			l.logger.Warn("close channel", log.Err(err))
		}
	}()

	l.setState(domain.StateStartPending)

	if err := l.startPlugins(); err != nil {
		l.logger.Error("plugin initialization failed", log.Err(err))
		l.signalQuit()
		l.finish(domain.ExitCodeOf(err), err)
		return
	}

	code := l.worker.Run(l)

	l.stopPlugins()
	l.finish(code, nil)
}

// finish records the exit code and reports Stopped.
func (l *Lifecycle) finish(code domain.ExitCode, err error) {
	l.mu.Lock()
	l.exitCode = code
	if err != nil {
		l.err = err
	}
	l.mu.Unlock()

	l.reporter.SetExitCode(code, 0)
	switch l.reporter.Status().State {
	case domain.StateStartPending, domain.StateStopPending:
	default:
		l.setState(domain.StateStopPending)
	}
	l.setState(domain.StateStopped)
	l.cancel()

	l.logger.Info("service stopped", log.Uint32("exit_code", uint32(code)))
}

func (l *Lifecycle) fail(err error) {
	code := domain.ExitCodeOf(err)
	l.mu.Lock()
	l.err = err
	l.exitCode = code
	l.mu.Unlock()
	l.logger.Error("service failed", log.Err(err), log.Uint32("exit_code", uint32(code)))
}

func (l *Lifecycle) setState(s domain.State) {
	if err := l.reporter.SetState(s); err != nil {
		l.logger.Warn("state change", log.String("to", s.String()), log.Err(err))
	}
}

func (l *Lifecycle) signalQuit() bool {
	if l.quit.Set() {
		l.cancel()
		return true
	}
	return false
}

// Run is the base worker body: it reports Running and blocks until the quit
// signal is set. Workers call it after their own setup.
func (l *Lifecycle) Run() domain.ExitCode {
	l.setState(domain.StateRunning)
	l.quit.Wait()
	return domain.ExitOK
}

// Stop reports StopPending and sets the quit signal. It is the default
// response to the Stop control and is idempotent.
func (l *Lifecycle) Stop() {
	l.setState(domain.StateStopPending)
	if l.signalQuit() {
		l.logger.Info("quit signalled")
	}
}

// Pause reports Paused. Call it from a PauseHandler once work is suspended.
func (l *Lifecycle) Pause() {
	l.setState(domain.StatePaused)
}

// Continue reports Running after a pause.
func (l *Lifecycle) Continue() {
	l.setState(domain.StateRunning)
}

// SetState reports an explicit state, for workers that expose pending
// phases of their own.
func (l *Lifecycle) SetState(s domain.State) error {
	return l.reporter.SetState(s)
}

// Accept declares additional controls, applied on the next transition.
func (l *Lifecycle) Accept(a domain.Accepts) {
	l.reporter.Accept(a)
}

// CheckPoint reports progress of a lengthy pending operation.
func (l *Lifecycle) CheckPoint(waitHint time.Duration) error {
	return l.reporter.CheckPoint(waitHint)
}

// Status returns the last reported status record.
func (l *Lifecycle) Status() domain.Status {
	return l.reporter.Status()
}

// Quit returns a channel closed when the quit signal is set, for workers
// that wait on several sources.
func (l *Lifecycle) Quit() <-chan struct{} {
	return l.quit.Done()
}

// Stopping reports whether the quit signal has been set.
func (l *Lifecycle) Stopping() bool {
	return l.quit.IsSet()
}

// Context is cancelled when the quit signal is set or the run ends.
func (l *Lifecycle) Context() context.Context {
	return l.ctx
}

// Name returns the service name.
func (l *Lifecycle) Name() string { return l.name }

// RunID identifies this run.
func (l *Lifecycle) RunID() string { return l.runID }

// Logger returns the logger workers use, tagged "worker".
func (l *Lifecycle) Logger() log.Logger { return log.Tagged(l.root, "worker") }

// Mode returns the execution mode selected by Start.
func (l *Lifecycle) Mode() domain.Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// IsInteractive reports whether the run is in the foreground.
func (l *Lifecycle) IsInteractive() bool {
	return l.Mode() == domain.ModeInteractive
}

// Args returns the arguments the run was started with.
func (l *Lifecycle) Args() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.args...)
}

// ExitCode returns the exit code of the run, or ExitPending while running.
func (l *Lifecycle) ExitCode() domain.ExitCode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exitCode
}

// Err returns the error that ended the run, if any.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
