// Package commands contains the core logic for building directory trees.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/ftree/internal/types"
	"github.com/temirov/ftree/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorStatRootFormat is used when the root cannot be inspected.
	errorStatRootFormat = "inspecting root %s: %w"

	// errorNotDirectoryFormat is used when the root is not a directory.
	errorNotDirectoryFormat = "%w: %s"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %v"

	logFieldRoot = "root"
)

// ErrNotDirectory is returned when the root of a build is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ReadDirectoryError reports a directory whose entries could not be listed.
// It aborts the whole build; no partial tree is returned.
type ReadDirectoryError struct {
	Path string
	Err  error
}

func (readError *ReadDirectoryError) Error() string {
	return fmt.Sprintf(errorReadDirectoryFormat, readError.Path, readError.Err)
}

func (readError *ReadDirectoryError) Unwrap() error {
	return readError.Err
}

// Build walks rootDirectoryPath and returns the filtered tree rooted at it.
// The root is always returned, even when every entry below it was filtered out.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) (*types.TreeNode, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootDirPath)
	if rootStatError != nil {
		return nil, fmt.Errorf(errorStatRootFormat, rootDirectoryPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorNotDirectoryFormat, ErrNotDirectory, absoluteRootDirPath)
	}

	treeBuilder.rootPath = absoluteRootDirPath
	treeBuilder.matcher = treeBuilder.newMatcher(absoluteRootDirPath)

	rootNode := &types.TreeNode{
		Name:        filepath.Base(absoluteRootDirPath),
		Path:        absoluteRootDirPath,
		IsDirectory: true,
		Children:    []*types.TreeNode{},
	}
	if expandError := treeBuilder.expand(rootNode, 0); expandError != nil {
		return nil, expandError
	}
	treeBuilder.logger.Debug("built tree", zap.String(logFieldRoot, absoluteRootDirPath), zap.Int("entries", countDescendants(rootNode)))
	return rootNode, nil
}

// expand lists the entries of node and attaches the ones that survive filtering.
// Directories are expanded before they are kept, and dropped when they end up empty.
func (treeBuilder *TreeBuilder) expand(node *types.TreeNode, depth int) error {
	maxDepth := treeBuilder.Options.MaxDepth
	if maxDepth != types.UnlimitedDepth && depth >= maxDepth {
		return nil
	}

	directoryEntries, readDirectoryError := treeBuilder.readDirectory(node.Path)
	if readDirectoryError != nil {
		return &ReadDirectoryError{Path: node.Path, Err: readDirectoryError}
	}
	treeBuilder.sortDirectoryEntries(directoryEntries)

	children := make([]*types.TreeNode, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(node.Path, directoryEntry.Name())
		relativeChildPath := utils.RelativePathOrSelf(childPath, treeBuilder.rootPath)
		if treeBuilder.matcher != nil && treeBuilder.matcher.IsIgnored(relativeChildPath, directoryEntry.IsDir()) {
			continue
		}

		childNode := &types.TreeNode{
			Name:        directoryEntry.Name(),
			Path:        childPath,
			IsDirectory: directoryEntry.IsDir(),
		}
		if childNode.IsDirectory {
			childNode.Children = []*types.TreeNode{}
			if expandError := treeBuilder.expand(childNode, depth+1); expandError != nil {
				return expandError
			}
			if len(childNode.Children) == 0 {
				continue
			}
		}
		children = append(children, childNode)
	}
	node.Children = children
	return nil
}

func countDescendants(node *types.TreeNode) int {
	total := 0
	for _, child := range node.Children {
		total += 1 + countDescendants(child)
	}
	return total
}
