// Package output renders built trees as text, Markdown or JSON.
// Every renderer is a pure function of the tree and never touches the filesystem.
package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/temirov/ftree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	markdownHeadingPrefix = "# File Tree: "
	markdownBullet        = "- "
	markdownIndent        = "  "
	directoryGlyph        = "📁"
	fileGlyph             = "📄"

	// rootSeparator separates the renderings of several roots.
	rootSeparator = "\n"
)

// Render returns the rendering of root in the requested format.
// Unknown formats fall back to the text tree.
func Render(root *types.TreeNode, format string) (string, error) {
	switch format {
	case types.FormatMarkdown:
		return RenderMarkdown(root), nil
	case types.FormatJSON:
		return RenderJSON(root)
	default:
		return RenderText(root), nil
	}
}

// RenderAll renders several roots in order. Text and Markdown renderings are separated by a
// blank line; JSON renderings of more than one root are wrapped in an array.
func RenderAll(roots []*types.TreeNode, format string) (string, error) {
	if len(roots) == 1 {
		return Render(roots[0], format)
	}
	if format == types.FormatJSON {
		projections := make([]*types.TreeOutputNode, 0, len(roots))
		for _, root := range roots {
			projections = append(projections, ProjectTree(root))
		}
		return encodeJSON(projections)
	}
	renderings := make([]string, 0, len(roots))
	for _, root := range roots {
		rendering, renderError := Render(root, format)
		if renderError != nil {
			return "", renderError
		}
		renderings = append(renderings, rendering)
	}
	return strings.Join(renderings, rootSeparator), nil
}

// RenderText returns the classic box-drawing tree. The root line carries no connector;
// the root counts as a last sibling, so its children are indented by one padding column.
func RenderText(root *types.TreeNode) string {
	if root == nil {
		return ""
	}
	var buffer bytes.Buffer
	buffer.WriteString(root.Name + "\n")
	writeTextChildren(&buffer, root, treeLastPadding)
	return buffer.String()
}

func writeTextChildren(buffer *bytes.Buffer, node *types.TreeNode, prefix string) {
	numberOfChildren := len(node.Children)
	for index, child := range node.Children {
		isLastChild := index == numberOfChildren-1
		connector := treeBranchConnector
		newPrefix := prefix + treeBranchPadding
		if isLastChild {
			connector = treeLastConnector
			newPrefix = prefix + treeLastPadding
		}
		buffer.WriteString(prefix + connector + child.Name + "\n")
		if child.IsDirectory {
			writeTextChildren(buffer, child, newPrefix)
		}
	}
}

// RenderMarkdown returns a heading naming the root followed by one bullet per descendant.
func RenderMarkdown(root *types.TreeNode) string {
	if root == nil {
		return ""
	}
	var buffer bytes.Buffer
	buffer.WriteString(markdownHeadingPrefix + root.Name + "\n\n")
	writeMarkdownChildren(&buffer, root, 1)
	return buffer.String()
}

func writeMarkdownChildren(buffer *bytes.Buffer, node *types.TreeNode, depth int) {
	for _, child := range node.Children {
		glyph := fileGlyph
		if child.IsDirectory {
			glyph = directoryGlyph
		}
		buffer.WriteString(strings.Repeat(markdownIndent, depth-1) + markdownBullet + glyph + " " + child.Name + "\n")
		writeMarkdownChildren(buffer, child, depth+1)
	}
}

// ProjectTree converts a tree into its name and hierarchy projection.
func ProjectTree(node *types.TreeNode) *types.TreeOutputNode {
	if node == nil {
		return nil
	}
	projection := &types.TreeOutputNode{
		Name: node.Name,
		Type: types.NodeTypeFile,
	}
	if node.IsDirectory {
		projection.Type = types.NodeTypeDirectory
	}
	for _, child := range node.Children {
		projection.Children = append(projection.Children, ProjectTree(child))
	}
	return projection
}

// RenderJSON marshals the projection of root with two-space indentation.
func RenderJSON(root *types.TreeNode) (string, error) {
	return encodeJSON(ProjectTree(root))
}

func encodeJSON(value interface{}) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(indentPrefix, indentSpacer)
	if jsonEncodeError := encoder.Encode(value); jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}
