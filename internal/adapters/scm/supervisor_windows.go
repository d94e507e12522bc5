//go:build windows

package scm

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
	"github.com/bft-labs/consvc/pkg/log"
)

// DefaultPreShutdownTimeout is used when the configured timeout cannot be
// queried from the service manager.
const DefaultPreShutdownTimeout = 3 * time.Minute

// Supervisor implements ports.Supervisor on top of the service control
// manager dispatcher. Serve blocks until the service has stopped.
type Supervisor struct {
	logger log.Logger
}

// NewSupervisor creates a supervisor.
func NewSupervisor(logger log.Logger) *Supervisor {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Supervisor{logger: log.Tagged(logger, "scm")}
}

// Serve connects to the service manager and runs entry on the service
// thread. Connection failures are returned unwrapped so that the Win32
// error code reaches the process exit code.
func (s *Supervisor) Serve(name string, entry ports.EntryFunc) error {
	return svc.Run(name, &handler{name: name, entry: entry, logger: s.logger})
}

type handler struct {
	name   string
	entry  ports.EntryFunc
	logger log.Logger
}

// Execute implements svc.Handler.
func (h *handler) Execute(args []string, r <-chan svc.ChangeRequest, s chan<- svc.Status) (bool, uint32) {
	ch := newChannel(h.name, r, s, h.logger)
	h.entry(args, ch)

	last := ch.Last()
	if last.ServiceSpecificExitCode != 0 {
		return true, last.ServiceSpecificExitCode
	}
	return false, uint32(last.ExitCode)
}

// channel adapts the svc request and status channels to ports.Channel.
type channel struct {
	name    string
	in      <-chan svc.ChangeRequest
	out     chan<- svc.Status
	logger  log.Logger
	timeout time.Duration

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu   sync.Mutex
	last domain.Status
}

func newChannel(name string, in <-chan svc.ChangeRequest, out chan<- svc.Status, logger log.Logger) *channel {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &channel{
		name:   name,
		in:     in,
		out:    out,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Register starts delivering control requests to d.
func (c *channel) Register(d ports.Dispatcher) error {
	c.timeout = preShutdownTimeout(c.name)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case req, ok := <-c.in:
				if !ok {
					return
				}
				ev := c.event(req)
				if code := d.Dispatch(ev); code != 0 {
					// The svc dispatcher acknowledges every control with
					// NO_ERROR; the handler result is only logged.
					c.logger.Warn("control result not forwarded",
						log.String("control", ev.Control.String()),
						log.Uint32("result", code),
					)
				}
			case <-c.done:
				return
			}
		}
	}()
	return nil
}

func (c *channel) event(req svc.ChangeRequest) domain.Event {
	ev := domain.Event{
		Control:   domain.Control(req.Cmd),
		EventType: req.EventType,
	}
	switch ev.Control {
	case domain.ControlPreShutdown:
		ev.Data = domain.PreShutdownInfo{Timeout: c.timeout}
	case domain.ControlSessionChange:
		if req.EventData != 0 {
			n := (*windows.WTSSESSION_NOTIFICATION)(unsafe.Pointer(req.EventData))
			ev.Data = domain.SessionNotification{SessionID: n.SessionID}
		}
	case domain.ControlDeviceEvent, domain.ControlPowerEvent:
		ev.Data = req.EventData
	}
	return ev
}

// ReportStatus forwards st to the service manager. The final Stopped
// report is left to the svc dispatcher, which sends it with the exit code
// returned from Execute.
func (c *channel) ReportStatus(st domain.Status) error {
	c.mu.Lock()
	c.last = st
	c.mu.Unlock()

	if st.State == domain.StateStopped {
		return nil
	}
	select {
	case c.out <- toSvcStatus(st):
		return nil
	case <-c.done:
		return fmt.Errorf("channel closed")
	}
}

func (c *channel) Last() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Close stops the request pump.
func (c *channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.wg.Wait()
	})
	return nil
}

func toSvcStatus(st domain.Status) svc.Status {
	return svc.Status{
		State:                   svc.State(st.State),
		Accepts:                 svc.Accepted(st.Accepts),
		CheckPoint:              st.CheckPoint,
		WaitHint:                uint32(st.WaitHint / time.Millisecond),
		Win32ExitCode:           uint32(st.ExitCode),
		ServiceSpecificExitCode: st.ServiceSpecificExitCode,
	}
}

// servicePreshutdownInfo is SERVICE_PRESHUTDOWN_INFO, which x/sys does not
// export. The timeout is in milliseconds.
type servicePreshutdownInfo struct {
	PreshutdownTimeout uint32
}

// preShutdownTimeout reads the configured pre-shutdown timeout of the
// service.
func preShutdownTimeout(name string) time.Duration {
	m, err := windows.OpenSCManager(nil, nil, windows.SC_MANAGER_CONNECT)
	if err != nil {
		return DefaultPreShutdownTimeout
	}
	defer windows.CloseServiceHandle(m)

	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return DefaultPreShutdownTimeout
	}
	s, err := windows.OpenService(m, namep, windows.SERVICE_QUERY_CONFIG)
	if err != nil {
		return DefaultPreShutdownTimeout
	}
	defer windows.CloseServiceHandle(s)

	var info servicePreshutdownInfo
	var needed uint32
	err = windows.QueryServiceConfig2(s, windows.SERVICE_CONFIG_PRESHUTDOWN_INFO,
		(*byte)(unsafe.Pointer(&info)), uint32(unsafe.Sizeof(info)), &needed)
	if err != nil || info.PreshutdownTimeout == 0 {
		return DefaultPreShutdownTimeout
	}
	return time.Duration(info.PreshutdownTimeout) * time.Millisecond
}
