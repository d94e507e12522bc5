package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/consvc/pkg/log"
	"github.com/bft-labs/consvc/pkg/service"
)

// heartbeat is the sample worker: it logs a beat every interval until
// stopped, and suspends beating while paused.
type heartbeat struct {
	interval time.Duration
	beats    atomic.Uint64

	mu     sync.Mutex
	paused bool
}

func newHeartbeat(interval time.Duration) *heartbeat {
	return &heartbeat{interval: interval}
}

func (h *heartbeat) Run(s *service.Service) service.ExitCode {
	s.Accept(service.AcceptPauseAndContinue |
		service.AcceptShutdown |
		service.AcceptPreShutdown |
		service.AcceptSessionChange)

	if err := s.SetState(service.StateRunning); err != nil {
		// A stop during start leaves nothing to run.
		s.Logger().Warn("heartbeat not started", log.Err(err))
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.Quit():
			s.Logger().Info("heartbeat stopped", log.Uint64("beats", h.beats.Load()))
			return service.ExitOK
		case <-ticker.C:
			if h.isPaused() {
				continue
			}
			n := h.beats.Add(1)
			s.Logger().Info("heartbeat", log.Uint64("beat", n))
		}
	}
}

func (h *heartbeat) isPaused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.paused
}

func (h *heartbeat) setPaused(paused bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paused = paused
}

func (h *heartbeat) OnPause(s *service.Service) {
	h.setPaused(true)
	s.Pause()
}

func (h *heartbeat) OnContinue(s *service.Service) {
	h.setPaused(false)
	s.Continue()
}

func (h *heartbeat) OnInterrogate(s *service.Service) {
	s.Logger().Debug("interrogate", log.Uint64("beats", h.beats.Load()))
}

func (h *heartbeat) OnShutdown(s *service.Service) {
	s.Logger().Info("system shutdown")
	s.Stop()
}

func (h *heartbeat) OnPreShutdown(s *service.Service, info service.PreShutdownInfo) uint32 {
	s.Logger().Info("system pre-shutdown", log.Duration("timeout", info.Timeout))
	s.Stop()
	return 0
}

func (h *heartbeat) OnSessionChange(s *service.Service, eventType uint32, n service.SessionNotification) uint32 {
	s.Logger().Info("session change",
		log.Uint32("event_type", eventType),
		log.Uint32("session_id", n.SessionID),
	)
	return 0
}
