package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/consvc/internal/adapters/fs"
	"github.com/bft-labs/consvc/internal/domain"
)

func TestRun_StatusWithoutSnapshot(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.toml")

	code := run([]string{"status", "--config", missing, "--status-dir", dir, "--name", "svc"})

	assert.Equal(t, 0, code)
}

func TestRun_StatusReadsSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo := fs.NewStatusFileRepository(dir, "svc")
	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{
		Name:      "svc",
		RunID:     "run-1",
		State:     "Running",
		UpdatedAt: time.Now().UTC(),
	}))

	code := run([]string{"status", "--config", filepath.Join(dir, "none.toml"), "--status-dir", dir, "--name", "svc"})

	assert.Equal(t, 0, code)
}

func TestRun_InvalidFlagValue(t *testing.T) {
	dir := t.TempDir()

	code := run([]string{"--config", filepath.Join(dir, "none.toml"), "--log-level", "loud", "/debug"})

	assert.Equal(t, 1, code)
}

func TestRun_UnknownFlag(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--no-such-flag"}))
}
