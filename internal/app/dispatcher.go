package app

import (
	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/pkg/log"
)

// NoError is the result code for a handled control.
const NoError uint32 = 0

// Dispatch routes a control event to the matching worker hook and returns
// the result code for the channel. It implements ports.Dispatcher.
func (l *Lifecycle) Dispatch(ev domain.Event) uint32 {
	l.dispatchLog.Debug("control received",
		log.String("control", ev.Control.String()),
		log.Uint32("event_type", ev.EventType),
	)

	w := l.worker
	switch ev.Control {
	case domain.ControlStop:
		if h, ok := w.(StopHandler); ok {
			h.OnStop(l)
		} else {
			l.Stop()
		}

	case domain.ControlPause:
		if h, ok := w.(PauseHandler); ok {
			h.OnPause(l)
		}

	case domain.ControlContinue:
		if h, ok := w.(ContinueHandler); ok {
			h.OnContinue(l)
		}

	case domain.ControlInterrogate:
		if h, ok := w.(InterrogateHandler); ok {
			h.OnInterrogate(l)
		}
		if err := l.reporter.Report(); err != nil {
			l.dispatchLog.Warn("interrogate: status not re-asserted", log.Err(err))
		}

	case domain.ControlPreShutdown:
		if h, ok := w.(PreShutdownHandler); ok {
			info, _ := ev.Data.(domain.PreShutdownInfo)
			return h.OnPreShutdown(l, info)
		}
		return l.unhandled

	case domain.ControlShutdown:
		if h, ok := w.(ShutdownHandler); ok {
			h.OnShutdown(l)
		}

	case domain.ControlDeviceEvent:
		if h, ok := w.(DeviceEventHandler); ok {
			return h.OnDeviceEvent(l, ev.EventType, ev.Data)
		}
		return l.unhandled

	case domain.ControlHardwareProfileChange:
		if h, ok := w.(HardwareProfileHandler); ok {
			return h.OnHardwareProfileChange(l, ev.EventType)
		}
		return l.unhandled

	case domain.ControlSessionChange:
		if h, ok := w.(SessionChangeHandler); ok {
			n, _ := ev.Data.(domain.SessionNotification)
			return h.OnSessionChange(l, ev.EventType, n)
		}
		return l.unhandled

	case domain.ControlPowerEvent:
		if h, ok := w.(PowerEventHandler); ok {
			return h.OnPowerEvent(l, ev.EventType, ev.Data)
		}
		return l.unhandled

	default:
		if h, ok := w.(UnknownHandler); ok {
			h.OnUnknown(l, ev)
		}
	}

	return NoError
}
