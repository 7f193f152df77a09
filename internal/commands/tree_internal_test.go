package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/ftree/internal/types"
)

// TestBuildFailsWhenDirectoryVanishes removes a subdirectory after its parent was listed,
// so the failure does not depend on permission bits or the current user.
func TestBuildFailsWhenDirectoryVanishes(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	vanishingDirectory := filepath.Join(rootDirectory, "vanishing")
	if makeDirError := os.MkdirAll(vanishingDirectory, 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "readme.md"), nil, 0o600); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}

	options := types.DefaultTreeOptions()
	options.UseGitignore = false
	treeBuilder := NewTreeBuilder(options, nil)
	treeBuilder.readDirectory = func(directoryPath string) ([]os.DirEntry, error) {
		directoryEntries, readError := os.ReadDir(directoryPath)
		if directoryPath == rootDirectory {
			if removeError := os.RemoveAll(vanishingDirectory); removeError != nil {
				testingHandle.Fatalf("remove: %v", removeError)
			}
		}
		return directoryEntries, readError
	}

	rootNode, buildError := treeBuilder.Build(rootDirectory)
	if rootNode != nil {
		testingHandle.Fatalf("expected no partial tree")
	}
	var readDirectoryError *ReadDirectoryError
	if !errors.As(buildError, &readDirectoryError) {
		testingHandle.Fatalf("expected ReadDirectoryError, got %v", buildError)
	}
	if readDirectoryError.Path != vanishingDirectory {
		testingHandle.Fatalf("expected failing path %s, got %s", vanishingDirectory, readDirectoryError.Path)
	}
	if !errors.Is(buildError, os.ErrNotExist) {
		testingHandle.Fatalf("expected not-exist error, got %v", buildError)
	}
}
