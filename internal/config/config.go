// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ftree/internal/utils"
)

const (
	commentPrefix = "#"

	ignoreFileInitialBufferSize = 64 * 1024
	// ignoreFileMaxLineSize bounds a single ignore file line.
	ignoreFileMaxLineSize = 16 * 1024 * 1024
)

// LoadIgnoreFilePatterns reads a gitignore-syntax file and returns its rules in file order.
// Blank lines and lines starting with # are skipped.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, ignoreFileInitialBufferSize), ignoreFileMaxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// FindNearestIgnoreFile returns the .gitignore of rootPath or of its closest ancestor.
// Only the first file found is reported; files further up are never consulted.
func FindNearestIgnoreFile(rootPath string) (string, bool) {
	directory, found := utils.FindAncestorContaining(rootPath, utils.GitIgnoreFileName, false)
	if !found {
		return "", false
	}
	return filepath.Join(directory, utils.GitIgnoreFileName), true
}
