package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/ftree/internal/utils"
)

// textFileName defines the name of the text file used in tests.
const textFileName = "sample.txt"

// nestedDirectoryName defines the directory used for nested path tests.
const nestedDirectoryName = "subdir"

// TestDeduplicatePatterns verifies that DeduplicatePatterns keeps the last copy of each pattern and drops blanks.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "keeps last duplicate",
			patterns: []string{"a", "b", "a"},
			expected: []string{"b", "a"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			testName: "repeated rule stays after its negation",
			patterns: []string{"build", "!build", "build"},
			expected: []string{"!build", "build"},
		},
		{
			testName: "drops blank and trims",
			patterns: []string{" node_modules ", "", "node_modules", "  "},
			expected: []string{"node_modules"},
		},
	}
	for index, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected length %d, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %s at position %d, got %s", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestRelativePathOrSelf verifies relative path calculation against the tree root.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	subPath := filepath.Join(temporaryRoot, textFileName)
	nestedPath := filepath.Join(temporaryRoot, nestedDirectoryName, textFileName)
	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "root path returns dot",
			fullPath: temporaryRoot,
			root:     temporaryRoot,
			expected: ".",
		},
		{
			testName: "sub path returns relative",
			fullPath: subPath,
			root:     temporaryRoot,
			expected: textFileName,
		},
		{
			testName: "nested path uses forward slashes",
			fullPath: nestedPath,
			root:     temporaryRoot,
			expected: nestedDirectoryName + "/" + textFileName,
		},
	}
	for index, testCase := range testCases {
		actual := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestFindAncestorContaining verifies the upward search stops at the nearest match.
func TestFindAncestorContaining(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	middleDirectory := filepath.Join(temporaryRoot, "middle")
	leafDirectory := filepath.Join(middleDirectory, "leaf")
	if makeDirError := os.MkdirAll(leafDirectory, 0o755); makeDirError != nil {
		testingInstance.Fatalf("mkdir: %v", makeDirError)
	}
	for _, directory := range []string{temporaryRoot, middleDirectory} {
		if writeError := os.WriteFile(filepath.Join(directory, utils.GitIgnoreFileName), []byte("x\n"), 0o600); writeError != nil {
			testingInstance.Fatalf("write ignore file: %v", writeError)
		}
	}

	foundDirectory, found := utils.FindAncestorContaining(leafDirectory, utils.GitIgnoreFileName, false)
	if !found {
		testingInstance.Fatalf("expected to find %s above %s", utils.GitIgnoreFileName, leafDirectory)
	}
	if foundDirectory != middleDirectory {
		testingInstance.Fatalf("expected nearest directory %s, got %s", middleDirectory, foundDirectory)
	}

	if _, foundDirectoryEntry := utils.FindAncestorContaining(leafDirectory, utils.GitIgnoreFileName, true); foundDirectoryEntry {
		testingInstance.Fatalf("a regular file must not satisfy a directory search")
	}
}

// TestGetApplicationVersionPrefersLinkTimeVersion verifies that a linked version wins over every fallback.
func TestGetApplicationVersionPrefersLinkTimeVersion(testingInstance *testing.T) {
	originalVersion := utils.Version
	testingInstance.Cleanup(func() { utils.Version = originalVersion })

	utils.Version = " v1.4.0 "
	if actual := utils.GetApplicationVersion(); actual != "v1.4.0" {
		testingInstance.Fatalf("expected v1.4.0, got %s", actual)
	}

	utils.Version = ""
	if actual := utils.GetApplicationVersion(); actual == "" {
		testingInstance.Fatalf("expected a fallback version, got an empty string")
	}
}
