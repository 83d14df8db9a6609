package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefevre/savepoint/test_helpers"
)

const theText = "backmeup susie"

func TestZipRoundTrip(t *testing.T) {
	source := test_helpers.CreateTmpFolder("orig")
	defer os.RemoveAll(source)
	test_helpers.MakeTestFile(source, "testfile.txt", theText)
	test_helpers.MakeTestFile(source, filepath.Join("thats", "deep", "nested.txt"), "way down")
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	zipPath := filepath.Join(dest, "backup.zip")

	files, bytes, err := ZipFolder(source, zipPath)

	assert.NoError(t, err)
	assert.Equal(t, 2, files)
	assert.Equal(t, int64(len(theText)+len("way down")), bytes)

	extracted := readArchive(t, zipPath)
	assert.Equal(t, theText, extracted["testfile.txt"])
	assert.Equal(t, "way down", extracted["thats/deep/nested.txt"])
}

func TestZipKeepsEmptyFolders(t *testing.T) {
	source := test_helpers.CreateTmpFolder("orig")
	defer os.RemoveAll(source)
	require.NoError(t, os.MkdirAll(filepath.Join(source, "NothingInHere"), os.ModePerm))
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)
	zipPath := filepath.Join(dest, "backup.zip")

	files, _, err := ZipFolder(source, zipPath)

	assert.NoError(t, err)
	assert.Equal(t, 0, files, "folders don't add to the file count")

	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()
	names := entryNames(reader)
	assert.Contains(t, names, "NothingInHere/")
}

func TestZipMissingSourceFails(t *testing.T) {
	dest := test_helpers.CreateTmpFolder("backups")
	defer os.RemoveAll(dest)

	_, _, err := ZipFolder(filepath.Join(dest, "no-such-folder"), filepath.Join(dest, "backup.zip"))

	assert.Error(t, err)
}

// readArchive extracts every regular entry into a name -> contents map.
func readArchive(t *testing.T, zipPath string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	extracted := map[string]string{}
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		require.NoError(t, err)
		contents, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		extracted[entry.Name] = string(contents)
	}
	return extracted
}

func entryNames(reader *zip.ReadCloser) (names []string) {
	for _, entry := range reader.File {
		names = append(names, entry.Name)
	}
	return names
}
