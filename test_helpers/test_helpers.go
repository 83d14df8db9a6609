package test_helpers

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

func CreateTmpFolder(prefix string) (newFolder string) {
	newFolder, err := os.MkdirTemp("", "sp-"+prefix+"-")
	if err != nil {
		log.Fatal(err)
	}
	return newFolder
}

func MakeTestFile(folderPath string, filename string, contents string) {
	fullPath := filepath.Join(folderPath, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(fullPath, []byte(contents), 0666); err != nil {
		log.Fatal(err)
	}
}

func FileContentsMatches(file1Path string, file2Path string) (bool, error) {
	file1Contents, err := readContents(file1Path)
	if err != nil {
		return false, err
	}
	file2Contents, err := readContents(file2Path)
	if err != nil {
		return false, err
	}
	return file1Contents == file2Contents, nil
}

func readContents(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// returns a function that always returns the same time
func TimeFixer() func() time.Time {
	return TimeFixerAt(time.Now())
}

// returns a function that always returns the given time
func TimeFixerAt(fixedTime time.Time) func() time.Time {
	return func() time.Time {
		return fixedTime
	}
}
