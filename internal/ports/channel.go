package ports

import "github.com/bft-labs/consvc/internal/domain"

// Dispatcher handles a single control event and returns the result code
// handed back to the channel. Implementations must return quickly: the
// supervisor waits for the result before delivering the next control.
type Dispatcher interface {
	Dispatch(ev domain.Event) uint32
}

// Channel is the active control channel of a run.
type Channel interface {
	// Register starts delivering control events to d. Events may arrive on
	// another goroutine as soon as Register returns.
	Register(d Dispatcher) error

	// ReportStatus pushes st to the supervisor. Interactive channels only
	// record it.
	ReportStatus(st domain.Status) error

	// Close stops event delivery. It is safe to call more than once.
	Close() error
}

// EntryFunc is the service main called back by a supervisor with the
// arguments the host passed and the channel for this run. The supervisor
// considers the service finished when EntryFunc returns.
type EntryFunc func(args []string, ch Channel)

// Supervisor hands a named service entry point to the host service manager.
type Supervisor interface {
	// Serve blocks until the host has run entry to completion. It returns
	// an error without calling entry when the process was not launched by
	// the host or registration is rejected.
	Serve(name string, entry EntryFunc) error
}
