package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mlefevre/savepoint/archive"
	"github.com/mlefevre/savepoint/naming"
	"github.com/mlefevre/savepoint/spcopy"
)

var validate = validator.New()

// Status is the outcome of a backup run.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Request carries everything a single backup run needs. The executor reads
// no configuration beyond it.
type Request struct {
	SourcePath      string `validate:"required"`
	DestinationRoot string `validate:"required"`
	Compress        bool
}

// Result describes one completed (or failed) backup run. It is immutable
// once returned.
type Result struct {
	OperationID  string
	Status       Status
	ArtifactPath string
	FileCount    int
	BytesCopied  int64
	Duration     time.Duration
	Err          error
}

func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// ErrorMessage renders the failure for display and logging, "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Executor runs backups one at a time. Callers serialise invocations; the
// executor holds no state between runs.
type Executor struct {
	logger zerolog.Logger
	now    func() time.Time
}

func NewExecutor(logger zerolog.Logger) *Executor {
	return &Executor{logger: logger, now: time.Now}
}

// NewExecutorAt is NewExecutor with an injected clock, used by tests to pin
// the date component of backup names.
func NewExecutorAt(logger zerolog.Logger, now func() time.Time) *Executor {
	return &Executor{logger: logger, now: now}
}

// Execute runs one backup: validate, pick a free versioned name, copy or
// archive, then report. Every filesystem fault is folded into the Result
// rather than returned raw; a partially written artifact is left in place
// for inspection.
func (e *Executor) Execute(req Request) Result {
	res := Result{
		OperationID: uuid.NewString(),
		Status:      StatusFailure,
	}
	logger := e.logger.With().Str("op", res.OperationID).Logger()

	if err := e.checkRequest(req); err != nil {
		logger.Error().Err(err).Msg("backup request rejected")
		res.Err = err
		return res
	}

	base := filepath.Base(filepath.Clean(req.SourcePath))
	name, version, err := naming.NextAvailable(req.DestinationRoot, base, e.now, req.Compress)
	if err != nil {
		logger.Error().Err(err).Msg("could not pick a backup name")
		res.Err = err
		return res
	}

	res.ArtifactPath = filepath.Join(req.DestinationRoot, name)
	if req.Compress {
		res.ArtifactPath += naming.ZipExtension
	}

	logger.Info().
		Str("source", req.SourcePath).
		Str("artifact", res.ArtifactPath).
		Int("version", version).
		Bool("compress", req.Compress).
		Msg("starting backup")

	start := time.Now()
	if req.Compress {
		res.FileCount, res.BytesCopied, err = archive.ZipFolder(req.SourcePath, res.ArtifactPath)
	} else {
		res.FileCount, res.BytesCopied, err = spcopy.CopyFolder(req.SourcePath, res.ArtifactPath)
	}
	res.Duration = time.Since(start)

	if err != nil {
		logger.Error().Err(err).
			Str("kind", Classify(err).String()).
			Int("partial_files", res.FileCount).
			Msg("backup failed")
		res.Err = err
		return res
	}

	res.Status = StatusSuccess
	logger.Info().
		Int("files", res.FileCount).
		Int64("bytes", res.BytesCopied).
		Dur("duration", res.Duration).
		Msg("backup completed")
	return res
}

// checkRequest rejects a run before any write happens: both paths present,
// source exists, is a folder, and is readable.
func (e *Executor) checkRequest(req Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return fmt.Errorf("source folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source %s is not a folder", ErrInvalidRequest, req.SourcePath)
	}

	// surfaces unreadable sources before a partial artifact gets created
	dir, err := os.Open(req.SourcePath)
	if err != nil {
		return fmt.Errorf("source folder: %w", err)
	}
	dir.Close()

	if err := os.MkdirAll(req.DestinationRoot, os.ModePerm); err != nil {
		return fmt.Errorf("destination root: %w", err)
	}
	return nil
}
