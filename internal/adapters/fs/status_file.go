package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/consvc/internal/domain"
)

const statusFileSuffix = ".status.json"

// StatusFileRepository implements ports.StatusRepository using one JSON
// file per service name.
type StatusFileRepository struct {
	dir  string
	name string
}

// NewStatusFileRepository creates a repository for service name under dir.
func NewStatusFileRepository(dir, name string) *StatusFileRepository {
	return &StatusFileRepository{dir: dir, name: name}
}

// Load retrieves the last saved snapshot.
// Returns an empty snapshot and nil error if no status file exists.
func (r *StatusFileRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Snapshot{}, nil
		}
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode %s: %w", r.Path(), err)
	}
	return snap, nil
}

// Save writes the snapshot atomically (temp file, then rename) so readers
// never observe a partial record.
func (r *StatusFileRepository) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the status file.
func (r *StatusFileRepository) Path() string {
	return filepath.Join(r.dir, r.name+statusFileSuffix)
}
