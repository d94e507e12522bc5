package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
	"github.com/bft-labs/consvc/pkg/log"
)

// DefaultWaitHint is the wait hint reported while in a pending state.
const DefaultWaitHint = 10 * time.Second

// StateEmitter is called when the reported state changes.
type StateEmitter interface {
	OnStateChange(previous, current domain.State, st domain.Status)
}

// transitions lists the allowed targets for each state. Re-entering the
// current state is always allowed and re-reports the status.
var transitions = map[domain.State][]domain.State{
	domain.StateStopped:         {domain.StateStartPending},
	domain.StateStartPending:    {domain.StateRunning, domain.StateStopPending, domain.StateStopped},
	domain.StateRunning:         {domain.StateStopPending, domain.StatePausePending, domain.StatePaused},
	domain.StatePausePending:    {domain.StatePaused, domain.StateRunning, domain.StateStopPending},
	domain.StatePaused:          {domain.StateContinuePending, domain.StateRunning, domain.StateStopPending},
	domain.StateContinuePending: {domain.StateRunning, domain.StateStopPending},
	domain.StateStopPending:     {domain.StateStopped},
}

func canTransition(from, to domain.State) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Reporter owns the current status record and pushes every change to the
// attached channel. All reports are serialized.
type Reporter struct {
	mu       sync.Mutex
	status   domain.Status
	declared domain.Accepts
	waitHint time.Duration
	channel  ports.Channel
	logger   log.Logger
	emitters []StateEmitter
}

// NewReporter creates a reporter in StateStopped with no channel attached.
func NewReporter(logger log.Logger, waitHint time.Duration, emitters ...StateEmitter) *Reporter {
	if waitHint <= 0 {
		waitHint = DefaultWaitHint
	}
	return &Reporter{
		status:   domain.Status{State: domain.StateStopped},
		waitHint: waitHint,
		logger:   logger,
		emitters: emitters,
	}
}

// Attach sets the channel that receives status reports.
func (r *Reporter) Attach(ch ports.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channel = ch
}

// Status returns a copy of the current status record.
func (r *Reporter) Status() domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Accept declares additional controls. They take effect on the next
// transition out of StartPending; Stop is always added implicitly.
func (r *Reporter) Accept(a domain.Accepts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.declared |= a
}

// SetExitCode records the exit code carried by subsequent reports.
func (r *Reporter) SetExitCode(code domain.ExitCode, serviceSpecific uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.ExitCode = code
	r.status.ServiceSpecificExitCode = serviceSpecific
}

// SetState transitions to newState and reports the new record.
// An invalid transition returns ErrInvalidTransition and changes nothing.
func (r *Reporter) SetState(newState domain.State) error {
	r.mu.Lock()
	oldState := r.status.State

	if !canTransition(oldState, newState) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, oldState, newState)
	}

	st := r.status
	st.State = newState
	if newState == domain.StateStartPending {
		st.Accepts = 0
	} else {
		st.Accepts = r.declared | domain.AcceptStop
	}
	if newState == oldState && newState.IsPending() {
		st.CheckPoint++
	} else {
		st.CheckPoint = 0
	}
	if newState.IsPending() {
		st.WaitHint = r.waitHint
	} else {
		st.WaitHint = 0
	}

	r.status = st
	err := r.push(st)
	emitters := r.emitters
	r.mu.Unlock()

	if oldState == newState {
		return err
	}

	// Emit events outside of lock
	for _, e := range emitters {
		e.OnStateChange(oldState, newState, st)
	}

	r.logger.Info("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("accepts", st.Accepts.String()),
	)

	return err
}

// Report re-asserts the current status without a state change. While in a
// pending state the checkpoint advances.
func (r *Reporter) Report() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.State.IsPending() {
		r.status.CheckPoint++
	}
	return r.push(r.status)
}

// CheckPoint reports progress during a pending state. A positive waitHint
// replaces the configured one for the remainder of the pending state.
func (r *Reporter) CheckPoint(waitHint time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.status.State.IsPending() {
		return fmt.Errorf("%w: checkpoint in %s", domain.ErrInvalidTransition, r.status.State)
	}
	r.status.CheckPoint++
	if waitHint > 0 {
		r.status.WaitHint = waitHint
	}
	return r.push(r.status)
}

// push must be called with r.mu held.
func (r *Reporter) push(st domain.Status) error {
	if r.channel == nil {
		return nil
	}
	if err := r.channel.ReportStatus(st); err != nil {
		r.logger.Error("status report failed",
			log.String("state", st.State.String()),
			log.Err(err),
		)
		return fmt.Errorf("report status: %w", err)
	}
	return nil
}
