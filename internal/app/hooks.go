package app

import "github.com/bft-labs/consvc/internal/domain"

// Worker is the body of a service. Run is called once the service is
// StartPending. A typical implementation does its own setup, calls the base
// (*Lifecycle).Run to report Running and wait for the quit signal, then
// tears down and returns the exit code reported to the host.
//
// Faults raised by Run are not recovered; convert them into an exit code.
type Worker interface {
	Run(l *Lifecycle) domain.ExitCode
}

// WorkerFunc adapts an ordinary function to the Worker interface.
type WorkerFunc func(l *Lifecycle) domain.ExitCode

// Run calls f(l).
func (f WorkerFunc) Run(l *Lifecycle) domain.ExitCode { return f(l) }

// A worker opts into a control by implementing the matching interface below.
// Hooks run on the channel's delivery goroutine and must return quickly;
// offload long work and signal it from the hook.

// StopHandler replaces the default Stop behaviour. Implementations must
// eventually call (*Lifecycle).Stop.
type StopHandler interface {
	OnStop(l *Lifecycle)
}

type PauseHandler interface {
	OnPause(l *Lifecycle)
}

type ContinueHandler interface {
	OnContinue(l *Lifecycle)
}

// InterrogateHandler is called before the current status is re-asserted.
type InterrogateHandler interface {
	OnInterrogate(l *Lifecycle)
}

// PreShutdownHandler receives the host grace period. The returned code is
// handed back to the channel unchanged.
type PreShutdownHandler interface {
	OnPreShutdown(l *Lifecycle, info domain.PreShutdownInfo) uint32
}

type ShutdownHandler interface {
	OnShutdown(l *Lifecycle)
}

type DeviceEventHandler interface {
	OnDeviceEvent(l *Lifecycle, eventType uint32, data any) uint32
}

type HardwareProfileHandler interface {
	OnHardwareProfileChange(l *Lifecycle, eventType uint32) uint32
}

type SessionChangeHandler interface {
	OnSessionChange(l *Lifecycle, eventType uint32, n domain.SessionNotification) uint32
}

type PowerEventHandler interface {
	OnPowerEvent(l *Lifecycle, eventType uint32, data any) uint32
}

// UnknownHandler observes controls outside the known set. It cannot change
// the result: unknown controls are always acknowledged.
type UnknownHandler interface {
	OnUnknown(l *Lifecycle, ev domain.Event)
}
