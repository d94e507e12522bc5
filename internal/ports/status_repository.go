package ports

import (
	"context"

	"github.com/bft-labs/consvc/internal/domain"
)

// StatusRepository persists status snapshots so that other processes can
// observe a running service.
type StatusRepository interface {
	// Load retrieves the last saved snapshot.
	// Returns an empty snapshot and nil error if none exists.
	Load(ctx context.Context) (domain.Snapshot, error)

	// Save persists the snapshot atomically.
	Save(ctx context.Context, snap domain.Snapshot) error
}
