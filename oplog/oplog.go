// Package oplog is the append-only record of every backup run. One
// human-readable line per operation; entries are never rewritten.
package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mlefevre/savepoint/backup"
)

type Log struct {
	path string
	now  func() time.Time
}

// New prepares an operation log at path, creating the containing folder.
// The file itself is created on first Record.
func New(path string) (*Log, error) {
	return NewAt(path, time.Now)
}

// NewAt is New with an injected clock for deterministic timestamps.
func NewAt(path string, now func() time.Time) (*Log, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("create log folder: %w", err)
		}
	}
	return &Log{path: path, now: now}, nil
}

func (l *Log) Path() string {
	return l.path
}

// Record appends one line describing the run. The file is opened in append
// mode per call, so entries land in invocation order and existing lines are
// never touched. A write failure is returned to the caller; it must not
// change the backup outcome already in hand.
func (l *Log) Record(req backup.Request, res backup.Result) error {
	line := fmt.Sprintf("%s | %s | op=%s | %s -> %s | files=%d | duration=%.3fs",
		l.now().Format(time.RFC3339),
		res.Status,
		res.OperationID,
		req.SourcePath,
		res.ArtifactPath,
		res.FileCount,
		res.Duration.Seconds(),
	)
	if msg := res.ErrorMessage(); msg != "" {
		line += " | error=" + msg
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open operation log: %w", err)
	}
	_, err = file.WriteString(line + "\n")
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("append to operation log: %w", err)
	}
	return nil
}
