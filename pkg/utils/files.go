package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource loads a whole source file. Failures are fatal errors so the
// caller can report them through the same channel as other resource errors.
func ReadSource(relPath string) (string, error) {
	fullPath, _, err := GetPathInfo(relPath)
	if err != nil {
		return "", Fatalf("Could not open file \"%s\": %v", relPath, err)
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", Fatalf("Could not open file \"%s\"", relPath)
		}
		return "", Fatalf("Could not read file \"%s\": %v", relPath, err)
	}
	return string(data), nil
}

// Die reports err on stderr and terminates the process. Only main packages
// call it.
func Die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
