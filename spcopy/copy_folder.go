package spcopy

import (
	"fmt"
	"os"
	"path/filepath"
)

// CopyFolder recursively copies source into dest, creating dest if needed.
// Empty folders are preserved. Only regular files are copied and counted;
// symlinks and other irregular entries are skipped. On error the counts
// accumulated so far are returned alongside it, and whatever was already
// written stays in place.
func CopyFolder(source string, dest string) (files int, bytes int64, err error) {
	if err := os.MkdirAll(dest, os.ModePerm); err != nil {
		return 0, 0, fmt.Errorf("create destination folder: %w", err)
	}

	contents, err := os.ReadDir(source)
	if err != nil {
		return 0, 0, fmt.Errorf("read source folder: %w", err)
	}

	for _, item := range contents {
		sourcePath := filepath.Join(source, item.Name())
		destPath := filepath.Join(dest, item.Name())

		if item.IsDir() {
			subFiles, subBytes, err := CopyFolder(sourcePath, destPath)
			files += subFiles
			bytes += subBytes
			if err != nil {
				return files, bytes, err
			}
			continue
		}

		if !item.Type().IsRegular() {
			continue
		}

		written, err := CopyFile(sourcePath, destPath)
		bytes += written
		if err != nil {
			return files, bytes, err
		}
		files++
	}

	return files, bytes, nil
}
