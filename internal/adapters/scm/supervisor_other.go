//go:build !windows

package scm

import (
	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
	"github.com/bft-labs/consvc/pkg/log"
)

// Supervisor implements ports.Supervisor. Managed mode requires Windows.
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

// Serve always fails with domain.ErrNotSupported.
func (s *Supervisor) Serve(name string, entry ports.EntryFunc) error {
	s.logger.Error("managed mode requires the Windows service control manager",
		log.String("service", name))
	return domain.ErrNotSupported
}
