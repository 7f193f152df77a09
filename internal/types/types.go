// Package types defines every cross‑package data structure used by the ftree CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	CommandTree = "tree"
	CommandSave = "save"
	CommandCopy = "copy"

	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"

	// UnlimitedDepth disables the depth limit of a build.
	UnlimitedDepth = -1
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// TreeNode is one filesystem entry of a generated tree.
// Children is only populated for directories and is already sorted.
type TreeNode struct {
	Name        string
	Path        string
	IsDirectory bool
	Children    []*TreeNode
}

// TreeOptions configures a single build. It is not modified once a build starts.
type TreeOptions struct {
	MaxDepth        int
	ExcludePatterns []string
	UseGitignore    bool
	Format          string
}

// DefaultTreeOptions returns the options used when neither configuration nor flags set a value.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{
		MaxDepth:     UnlimitedDepth,
		UseGitignore: true,
		Format:       FormatText,
	}
}

// TreeOutputNode is the JSON projection of a TreeNode: names and hierarchy only.
type TreeOutputNode struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Children []*TreeOutputNode `json:"children,omitempty"`
}

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatText, FormatMarkdown, FormatJSON:
		return true
	default:
		return false
	}
}
