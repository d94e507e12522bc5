// Package log opens the log output for a run: the console in interactive
// mode, an append-only file in managed mode where no console is attached.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bft-labs/consvc/internal/domain"
	pkglog "github.com/bft-labs/consvc/pkg/log"
)

// Open returns a logger for mode at level. The returned closer releases
// the log file, if any.
func Open(mode domain.Mode, path string, level pkglog.Level) (*pkglog.ZerologAdapter, io.Closer, error) {
	if mode == domain.ModeInteractive {
		logger := pkglog.NewZerologAdapter()
		logger.SetLevel(level)
		return logger, io.NopCloser(nil), nil
	}

	if path == "" {
		return nil, nil, fmt.Errorf("%w: log file is required in managed mode", domain.ErrInvalidConfig)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := pkglog.NewZerologAdapterWithWriter(f)
	logger.SetLevel(level)
	return logger, f, nil
}
