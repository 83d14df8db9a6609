package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/mlefevre/savepoint/backup"
	"github.com/mlefevre/savepoint/oplog"
	"github.com/mlefevre/savepoint/prefs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("savepoint", flag.ExitOnError)
	source := fs.String("source", "", "folder to back up (defaults to last used)")
	dest := fs.String("dest", "", "folder backups are written into (defaults to last used)")
	compress := fs.Bool("compress", false, "write a single zip instead of a folder copy")
	logPath := fs.String("log", filepath.Join("logs", "backup.log"), "operation log file")
	configPath := fs.String("config", prefs.DefaultPath(), "preferences file")
	logLevel := fs.String("log-level", "warn", "diagnostic log level")
	fs.Parse(args)

	logger := newLogger(*logLevel)

	preferences, err := prefs.Load(*configPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", *configPath).Msg("ignoring unreadable preferences")
		preferences = prefs.Preferences{}
	}

	req := mergeRequest(fs, preferences, *source, *dest, *compress)
	if req.SourcePath == "" || req.DestinationRoot == "" {
		fmt.Fprintln(os.Stderr, "Error: -source and -dest are required (no saved preferences found)")
		fs.Usage()
		return 1
	}

	// remember the choices for next time, like the original front end did
	preferences = prefs.Preferences{
		SourceFolder:      req.SourcePath,
		DestinationFolder: req.DestinationRoot,
		Compress:          req.Compress,
	}
	if err := prefs.Save(*configPath, preferences); err != nil {
		logger.Warn().Err(err).Msg("could not save preferences")
	}

	log, err := oplog.New(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot prepare operation log: %v\n", err)
		return 1
	}

	ok, message := runBackup(logger, log, req)
	fmt.Println(message)
	if !ok {
		return 1
	}
	return 0
}

// runBackup is the whole surface a front end needs: one backup, one log
// record, one user-facing message. A log write failure is reported as a
// warning and never flips the backup outcome.
func runBackup(logger zerolog.Logger, log *oplog.Log, req backup.Request) (ok bool, message string) {
	executor := backup.NewExecutor(logger)
	result := executor.Execute(req)

	if err := log.Record(req, result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: backup outcome could not be logged: %v\n", err)
	}

	if !result.Succeeded() {
		return false, fmt.Sprintf("Backup failed (%s): %s - check %s",
			backup.Classify(result.Err), result.ErrorMessage(), log.Path())
	}
	return true, fmt.Sprintf("Backup successful: %d files (%s) to %s in %s",
		result.FileCount,
		humanize.Bytes(uint64(result.BytesCopied)),
		result.ArtifactPath,
		result.Duration.Round(time.Millisecond))
}

// mergeRequest overlays explicitly set flags on the saved preferences.
func mergeRequest(fs *flag.FlagSet, p prefs.Preferences, source, dest string, compress bool) backup.Request {
	req := backup.Request{
		SourcePath:      p.SourceFolder,
		DestinationRoot: p.DestinationFolder,
		Compress:        p.Compress,
	}
	if source != "" {
		req.SourcePath = source
	}
	if dest != "" {
		req.DestinationRoot = dest
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "compress" {
			req.Compress = compress
		}
	})
	return req
}

func newLogger(level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.WarnLevel
	}
	return logger.Level(parsed)
}
