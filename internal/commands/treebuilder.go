package commands

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/temirov/ftree/internal/ignore"
	"github.com/temirov/ftree/internal/types"
)

// TreeBuilder builds directory tree nodes using configured options.
// A TreeBuilder is not safe for concurrent use; create one per build.
type TreeBuilder struct {
	Options types.TreeOptions

	logger   *zap.Logger
	collator *collate.Collator
	matcher  *ignore.Matcher
	rootPath string

	readDirectory func(string) ([]os.DirEntry, error)
}

// NewTreeBuilder returns a builder for the provided options. A nil logger discards all messages.
func NewTreeBuilder(options types.TreeOptions, logger *zap.Logger) *TreeBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeBuilder{
		Options:  options,
		logger:   logger,
		collator: collate.New(language.Und),

		readDirectory: os.ReadDir,
	}
}

// newMatcher compiles the ignore rules for a build rooted at rootPath.
// It returns nil when neither .gitignore discovery nor exclude patterns are enabled.
func (treeBuilder *TreeBuilder) newMatcher(rootPath string) *ignore.Matcher {
	if !treeBuilder.Options.UseGitignore && len(treeBuilder.Options.ExcludePatterns) == 0 {
		return nil
	}
	matcher := ignore.NewMatcher(treeBuilder.logger)
	if treeBuilder.Options.UseGitignore {
		matcher.Load(rootPath)
	}
	matcher.AddPatterns(treeBuilder.Options.ExcludePatterns)
	return matcher
}
