package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ZipFolder compresses the full contents of source into a single deflate
// zip at destZip. Entry names are paths relative to source, so extracting
// the archive reproduces the original layout, empty folders included. Only
// regular files are stored and counted; bytes is the uncompressed payload
// total. A partially written archive is left in place on error.
func ZipFolder(source string, destZip string) (files int, bytes int64, err error) {
	if err := os.MkdirAll(filepath.Dir(destZip), os.ModePerm); err != nil {
		return 0, 0, fmt.Errorf("create archive folder: %w", err)
	}

	zipFile, err := os.Create(destZip)
	if err != nil {
		return 0, 0, fmt.Errorf("create archive: %w", err)
	}
	defer zipFile.Close()

	writer := zip.NewWriter(zipFile)

	err = filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if entry.IsDir() {
			// directory entries keep empty folders in the archive
			_, err := writer.Create(filepath.ToSlash(relPath) + "/")
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)
		header.Method = zip.Deflate

		entryWriter, err := writer.CreateHeader(header)
		if err != nil {
			return err
		}

		srcFile, err := os.Open(path)
		if err != nil {
			return err
		}
		written, err := io.Copy(entryWriter, srcFile)
		srcFile.Close()
		bytes += written
		if err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		files++
		return nil
	})
	if err != nil {
		writer.Close()
		return files, bytes, fmt.Errorf("zip %s: %w", source, err)
	}

	if err := writer.Close(); err != nil {
		return files, bytes, fmt.Errorf("finalise archive: %w", err)
	}
	if err := zipFile.Close(); err != nil {
		return files, bytes, fmt.Errorf("close archive: %w", err)
	}
	return files, bytes, nil
}
