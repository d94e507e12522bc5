package app

import (
	"context"
	"os"
	"time"

	"github.com/bft-labs/consvc/internal/domain"
	"github.com/bft-labs/consvc/internal/ports"
	"github.com/bft-labs/consvc/pkg/log"
)

// statusRecorder persists a snapshot on every state change.
type statusRecorder struct {
	lifecycle *Lifecycle
	repo      ports.StatusRepository
}

func (r *statusRecorder) OnStateChange(previous, current domain.State, st domain.Status) {
	l := r.lifecycle
	snap := domain.Snapshot{
		Name:      l.name,
		Mode:      l.Mode().String(),
		RunID:     l.runID,
		PID:       os.Getpid(),
		State:     current.String(),
		Accepts:   st.Accepts.String(),
		Status:    st,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.repo.Save(context.Background(), snap); err != nil {
		l.logger.Warn("failed to save status", log.Err(err))
	}
}
