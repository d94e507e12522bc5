package domain

import "strings"

// State represents the lifecycle state of the service.
type State uint32

const (
	StateStopped         State = 1
	StateStartPending    State = 2
	StateStopPending     State = 3
	StateRunning         State = 4
	StateContinuePending State = 5
	StatePausePending    State = 6
	StatePaused          State = 7
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStartPending:
		return "StartPending"
	case StateStopPending:
		return "StopPending"
	case StateRunning:
		return "Running"
	case StateContinuePending:
		return "ContinuePending"
	case StatePausePending:
		return "PausePending"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsPending reports whether s is one of the transitional states during which
// the supervisor expects checkpoint progress.
func (s State) IsPending() bool {
	switch s {
	case StateStartPending, StateStopPending, StateContinuePending, StatePausePending:
		return true
	}
	return false
}

// Accepts is the bitmask of controls the service currently accepts.
type Accepts uint32

const (
	AcceptStop                  Accepts = 0x00000001
	AcceptPauseAndContinue      Accepts = 0x00000002
	AcceptShutdown              Accepts = 0x00000004
	AcceptParamChange           Accepts = 0x00000008
	AcceptNetBindChange         Accepts = 0x00000010
	AcceptHardwareProfileChange Accepts = 0x00000020
	AcceptPowerEvent            Accepts = 0x00000040
	AcceptSessionChange         Accepts = 0x00000080
	AcceptPreShutdown           Accepts = 0x00000100
)

var acceptNames = []struct {
	bit  Accepts
	name string
}{
	{AcceptStop, "Stop"},
	{AcceptPauseAndContinue, "PauseAndContinue"},
	{AcceptShutdown, "Shutdown"},
	{AcceptParamChange, "ParamChange"},
	{AcceptNetBindChange, "NetBindChange"},
	{AcceptHardwareProfileChange, "HardwareProfileChange"},
	{AcceptPowerEvent, "PowerEvent"},
	{AcceptSessionChange, "SessionChange"},
	{AcceptPreShutdown, "PreShutdown"},
}

// Has reports whether all bits of other are set in a.
func (a Accepts) Has(other Accepts) bool {
	return a&other == other
}

// String lists the accepted controls separated by '|', or "None".
func (a Accepts) String() string {
	if a == 0 {
		return "None"
	}
	var parts []string
	for _, n := range acceptNames {
		if a&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}
