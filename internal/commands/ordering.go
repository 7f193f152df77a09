package commands

import (
	"os"
	"sort"
)

// sortDirectoryEntries orders entries directories first, then by name under the
// root Unicode collation. Names the collation considers equal fall back to byte order
// so the result does not depend on the order os.ReadDir returned them in.
func (treeBuilder *TreeBuilder) sortDirectoryEntries(directoryEntries []os.DirEntry) {
	sort.SliceStable(directoryEntries, func(leftIndex, rightIndex int) bool {
		return treeBuilder.entryLess(directoryEntries[leftIndex], directoryEntries[rightIndex])
	})
}

func (treeBuilder *TreeBuilder) entryLess(left, right os.DirEntry) bool {
	if left.IsDir() != right.IsDir() {
		return left.IsDir()
	}
	return treeBuilder.nameLess(left.Name(), right.Name())
}

func (treeBuilder *TreeBuilder) nameLess(leftName, rightName string) bool {
	if comparison := treeBuilder.collator.CompareString(leftName, rightName); comparison != 0 {
		return comparison < 0
	}
	return leftName < rightName
}
