package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ZipExtension is appended to the generated name when the backup is archived.
const ZipExtension = ".zip"

// maxVersionProbes bounds the collision scan so a pathological destination
// cannot loop forever.
const maxVersionProbes = 10000

// ErrVersionsExhausted is returned when no free version number is found
// within maxVersionProbes.
var ErrVersionsExhausted = errors.New("no free backup version number available")

// Name builds a backup name from the source's base name, the backup date and
// a version number, e.g. "photos_2026-08-29_v2.0.0".
func Name(base string, date time.Time, version int) string {
	return fmt.Sprintf("%s_%04d-%02d-%02d_v%d.0.0",
		base, date.Year(), date.Month(), date.Day(), version)
}

// NextAvailable returns the first backup name, starting at version 1, whose
// artifact path does not yet exist under destRoot. When compress is set the
// artifact is the zip file rather than a directory, so the probe checks the
// name with ZipExtension appended.
func NextAvailable(destRoot string, base string, getTime func() time.Time, compress bool) (name string, version int, err error) {
	date := getTime()
	for version = 1; version <= maxVersionProbes; version++ {
		name = Name(base, date, version)
		candidate := filepath.Join(destRoot, name)
		if compress {
			candidate += ZipExtension
		}
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return name, version, nil
		}
		if err != nil {
			// an unreadable destination is not "name taken"
			return "", 0, fmt.Errorf("probe %s: %w", candidate, err)
		}
	}
	return "", 0, ErrVersionsExhausted
}
