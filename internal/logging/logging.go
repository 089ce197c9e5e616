// Package logging builds the client's zap logger. The TUI owns the
// terminal, so logs go to a file; with no file configured the logger is a
// no-op.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a logger writing JSON lines to path, plus a flush function.
func New(path string) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	log, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return log, func() { _ = log.Sync() }, nil
}
