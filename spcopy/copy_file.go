package spcopy

import (
	"fmt"
	"io"
	"os"
)

// CopyFile copies a single regular file, preserving its mode, and returns
// the number of bytes written.
func CopyFile(source string, dest string) (int64, error) {
	srcFile, err := os.Open(source)
	if err != nil {
		return 0, fmt.Errorf("open source file: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source file: %w", err)
	}

	destFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("create destination file: %w", err)
	}

	bytesWritten, err := io.Copy(destFile, srcFile)
	if err != nil {
		destFile.Close()
		return bytesWritten, fmt.Errorf("copy %s: %w", source, err)
	}
	if err := destFile.Close(); err != nil {
		return bytesWritten, fmt.Errorf("close destination file: %w", err)
	}
	return bytesWritten, nil
}
