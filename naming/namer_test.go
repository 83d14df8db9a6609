package naming

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefevre/savepoint/test_helpers"
)

func TestGeneratesVersionedName(t *testing.T) {
	date := time.Date(2001, 2, 3, 14, 5, 6, 7, time.UTC)
	name := Name("photos", date, 1)
	assert.Equal(t, "photos_2001-02-03_v1.0.0", name)
}

func TestVersionAppearsInName(t *testing.T) {
	date := time.Date(2001, 2, 3, 14, 5, 6, 7, time.UTC)
	name := Name("photos", date, 12)
	assert.Equal(t, "photos_2001-02-03_v12.0.0", name)
}

func TestFirstBackupGetsVersionOne(t *testing.T) {
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	timeFixer := test_helpers.TimeFixer()

	name, version, err := NextAvailable(dest, "photos", timeFixer, false)

	assert.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, Name("photos", timeFixer(), 1), name)
}

func TestVersionIncrementsPastExistingBackups(t *testing.T) {
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	timeFixer := test_helpers.TimeFixer()

	// occupy v1 and v2
	for version := 1; version <= 2; version++ {
		taken := filepath.Join(dest, Name("photos", timeFixer(), version))
		assert.NoError(t, os.Mkdir(taken, os.ModePerm))
	}

	name, version, err := NextAvailable(dest, "photos", timeFixer, false)

	assert.NoError(t, err)
	assert.Equal(t, 3, version)
	assert.Equal(t, Name("photos", timeFixer(), 3), name)
}

func TestUnreadableDestinationReportsTheStatError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission failures don't apply when running as root")
	}
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	// no execute bit: probing children fails with EACCES, not ErrNotExist
	require.NoError(t, os.Chmod(dest, 0666))
	defer os.Chmod(dest, 0755)

	_, _, err := NextAvailable(dest, "photos", test_helpers.TimeFixer(), false)

	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrVersionsExhausted, "a stat failure is not an exhausted version scan")
}

func TestZipProbeChecksZipPath(t *testing.T) {
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	timeFixer := test_helpers.TimeFixer()

	taken := filepath.Join(dest, Name("photos", timeFixer(), 1)+ZipExtension)
	assert.NoError(t, os.WriteFile(taken, []byte{}, 0666))

	name, version, err := NextAvailable(dest, "photos", timeFixer, true)

	assert.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.Equal(t, Name("photos", timeFixer(), 2), name)
}

func TestZipProbeIgnoresPlainFolderWithSameStem(t *testing.T) {
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	timeFixer := test_helpers.TimeFixer()

	// a directory backup from the same day doesn't block the zip name
	taken := filepath.Join(dest, Name("photos", timeFixer(), 1))
	assert.NoError(t, os.Mkdir(taken, os.ModePerm))

	name, version, err := NextAvailable(dest, "photos", timeFixer, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, Name("photos", timeFixer(), 1), name)
}
