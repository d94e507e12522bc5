package domain

import (
	"fmt"
	"time"
)

// Control identifies the kind of a control request.
type Control uint32

const (
	ControlStop                  Control = 0x00000001
	ControlPause                 Control = 0x00000002
	ControlContinue              Control = 0x00000003
	ControlInterrogate           Control = 0x00000004
	ControlShutdown              Control = 0x00000005
	ControlParamChange           Control = 0x00000006
	ControlNetBindAdd            Control = 0x00000007
	ControlNetBindRemove         Control = 0x00000008
	ControlNetBindEnable         Control = 0x00000009
	ControlNetBindDisable        Control = 0x0000000A
	ControlDeviceEvent           Control = 0x0000000B
	ControlHardwareProfileChange Control = 0x0000000C
	ControlPowerEvent            Control = 0x0000000D
	ControlSessionChange         Control = 0x0000000E
	ControlPreShutdown           Control = 0x0000000F
)

// String returns the control name, or its hex code when unknown.
func (c Control) String() string {
	switch c {
	case ControlStop:
		return "Stop"
	case ControlPause:
		return "Pause"
	case ControlContinue:
		return "Continue"
	case ControlInterrogate:
		return "Interrogate"
	case ControlShutdown:
		return "Shutdown"
	case ControlParamChange:
		return "ParamChange"
	case ControlNetBindAdd:
		return "NetBindAdd"
	case ControlNetBindRemove:
		return "NetBindRemove"
	case ControlNetBindEnable:
		return "NetBindEnable"
	case ControlNetBindDisable:
		return "NetBindDisable"
	case ControlDeviceEvent:
		return "DeviceEvent"
	case ControlHardwareProfileChange:
		return "HardwareProfileChange"
	case ControlPowerEvent:
		return "PowerEvent"
	case ControlSessionChange:
		return "SessionChange"
	case ControlPreShutdown:
		return "PreShutdown"
	default:
		return fmt.Sprintf("Control(0x%X)", uint32(c))
	}
}

// Event is a single control request delivered by a channel.
// EventType and Data are only meaningful for the controls that carry them.
type Event struct {
	Control   Control
	EventType uint32
	Data      any
}

// PreShutdownInfo is the payload of a PreShutdown control.
type PreShutdownInfo struct {
	// Timeout is the grace period the host grants before it terminates
	// the process.
	Timeout time.Duration
}

// SessionNotification is the payload of a SessionChange control.
type SessionNotification struct {
	SessionID uint32
}
