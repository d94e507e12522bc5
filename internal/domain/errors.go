package domain

import (
	"errors"
	"fmt"
	"syscall"
)

// Domain errors represent error conditions of the service host.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start is called while another
	// lifecycle is active in the process.
	ErrAlreadyRunning = errors.New("consvc: already running")

	// ErrRegistration is returned when the control channel could not be
	// established. No worker code runs after it.
	ErrRegistration = errors.New("consvc: channel registration failed")

	// ErrNotSupported is returned by the managed-mode supervisor on
	// platforms without a service control manager.
	ErrNotSupported = errors.New("consvc: managed mode not supported on this platform")

	// ErrInvalidTransition is returned when a state change is not allowed.
	ErrInvalidTransition = errors.New("consvc: invalid state transition")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("consvc: invalid configuration")
)

// ExitCode is the process result surfaced to the host.
type ExitCode uint32

const (
	// ExitOK denotes a clean stop.
	ExitOK ExitCode = 0
	// ExitFailure is used for errors that carry no host code.
	ExitFailure ExitCode = 1
	// ExitPending is the neutral value held until the worker returns.
	ExitPending ExitCode = 997
	// ExitServiceSpecific tells the host to read the service-specific code.
	ExitServiceSpecific ExitCode = 1066
)

// CodeError attaches a host exit code to an error.
type CodeError struct {
	Code ExitCode
	Err  error
}

func (e *CodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return fmt.Sprintf("%v (exit code %d)", e.Err, e.Code)
}

func (e *CodeError) Unwrap() error { return e.Err }

// ExitCode returns the attached code.
func (e *CodeError) ExitCode() uint32 { return uint32(e.Code) }

// ExitCodeOf maps err to the code reported to the host. Errors exposing
// ExitCode() uint32 or wrapping a syscall.Errno keep their code; nil maps
// to ExitOK and everything else to ExitFailure.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitOK
	}
	var coder interface{ ExitCode() uint32 }
	if errors.As(err, &coder) {
		return ExitCode(coder.ExitCode())
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return ExitCode(errno)
	}
	return ExitFailure
}
