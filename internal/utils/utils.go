package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes repeated patterns while preserving rule order.
// The last occurrence of each pattern is kept, since a later rule takes precedence over
// earlier ones. Blank patterns are dropped.
func DeduplicatePatterns(patterns []string) []string {
	lastPositions := make(map[string]int, len(patterns))
	trimmedPatterns := make([]string, len(patterns))
	for position, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		trimmedPatterns[position] = trimmedPattern
		if trimmedPattern != "" {
			lastPositions[trimmedPattern] = position
		}
	}
	result := make([]string, 0, len(lastPositions))
	for position, trimmedPattern := range trimmedPatterns {
		if trimmedPattern == "" || lastPositions[trimmedPattern] != position {
			continue
		}
		result = append(result, trimmedPattern)
	}
	return result
}

// RelativePathOrSelf calculates the relative path from root to fullPath in forward-slash form.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// FindAncestorContaining searches startDirectory and then each parent directory, up to and
// including the filesystem root, for an entry called entryName. When wantDirectory is true
// the entry must be a directory, otherwise it must not be one. It returns the directory
// holding the first match.
func FindAncestorContaining(startDirectory string, entryName string, wantDirectory bool) (string, bool) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", false
	}

	currentDirectory := absoluteStartDirectory
	for {
		candidatePath := filepath.Join(currentDirectory, entryName)
		fileInformation, errorStat := os.Stat(candidatePath)
		if errorStat == nil && fileInformation.IsDir() == wantDirectory {
			return currentDirectory, true
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", false
}
