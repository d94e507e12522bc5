// Package console implements the interactive control channel: Ctrl+C,
// Ctrl+Break and termination signals become a Stop control.
package console

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
	"github.com/bft-labs/consvc/pkg/log"
)

// Notice is printed when the channel starts listening.
const Notice = "Press Ctrl+C or Ctrl+Break to quit..."

// Channel implements ports.Channel for foreground runs.
type Channel struct {
	logger log.Logger
	out    io.Writer

	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)

	sigCh chan os.Signal
	done  chan struct{}
	wg    sync.WaitGroup

	mu         sync.Mutex
	registered bool
	last       domain.Status
	closeOnce  sync.Once
}

// NewChannel creates a console channel that prints its notice to out.
func NewChannel(logger log.Logger, out io.Writer) *Channel {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Channel{
		logger: log.Tagged(logger, "console"),
		out:    out,
		notify: signal.Notify,
		stop:   signal.Stop,
		sigCh:  make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}
}

// Register installs the signal handler. Every interrupt or termination
// signal is delivered to d as a Stop control.
func (c *Channel) Register(d ports.Dispatcher) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.registered {
		return fmt.Errorf("console channel already registered")
	}
	c.registered = true

	fmt.Fprintln(c.out, Notice)
	c.notify(c.sigCh, os.Interrupt, syscall.SIGTERM)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case sig := <-c.sigCh:
				c.logger.Info("signal received", log.String("signal", sig.String()))
				d.Dispatch(domain.Event{Control: domain.ControlStop})
			case <-c.done:
				return
			}
		}
	}()
	return nil
}

// ReportStatus records the status. There is no supervisor to inform in the
// foreground.
func (c *Channel) ReportStatus(st domain.Status) error {
	c.mu.Lock()
	c.last = st
	c.mu.Unlock()

	c.logger.Debug("status",
		log.String("state", st.State.String()),
		log.String("accepts", st.Accepts.String()),
		log.Uint32("checkpoint", st.CheckPoint),
	)
	return nil
}

// Last returns the most recently reported status.
func (c *Channel) Last() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Close removes the signal handler. It is safe to call more than once.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.stop(c.sigCh)
		close(c.done)
		c.wg.Wait()
	})
	return nil
}
