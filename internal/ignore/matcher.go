// Package ignore decides which entries of a tree are excluded.
//
// Rules come from the nearest .gitignore at or above the tree root followed by
// user supplied exclude patterns. All rules are evaluated against paths relative
// to the tree root, not relative to the directory holding the .gitignore file.
package ignore

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"github.com/temirov/ftree/internal/config"
)

const (
	logFieldPattern = "pattern"
	logFieldPath    = "path"
	logFieldError   = "error"
	logFieldRules   = "rules"
)

// Matcher holds an ordered list of compiled gitignore rules.
// It is built once per tree build and not modified while the tree is walked.
type Matcher struct {
	rules  []gitignore.Pattern
	logger *zap.Logger
}

// NewMatcher returns an empty matcher. A nil logger discards all messages.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load appends the rules of the first .gitignore found at rootPath or above it.
// A missing or unreadable file leaves the matcher unchanged. The returned path is
// the ignore file that was used, or empty when none was loaded.
func (matcher *Matcher) Load(rootPath string) string {
	ignoreFilePath, found := config.FindNearestIgnoreFile(rootPath)
	if !found {
		matcher.logger.Debug("no ignore file found", zap.String(logFieldPath, rootPath))
		return ""
	}
	patterns, loadError := config.LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		matcher.logger.Debug("ignore file unreadable", zap.String(logFieldPath, ignoreFilePath), zap.Error(loadError))
		return ""
	}
	matcher.addRules(patterns)
	matcher.logger.Debug("loaded ignore file", zap.String(logFieldPath, ignoreFilePath), zap.Int(logFieldRules, matcher.RuleCount()))
	return ignoreFilePath
}

// AddPatterns appends explicit exclude patterns after any rules already present,
// so they take precedence over earlier rules under gitignore ordering.
func (matcher *Matcher) AddPatterns(patterns []string) {
	matcher.addRules(patterns)
}

func (matcher *Matcher) addRules(patterns []string) {
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if validationError := ValidatePattern(trimmedPattern); validationError != nil {
			matcher.logger.Warn("skipping invalid ignore pattern", zap.String(logFieldPattern, pattern), zap.String(logFieldError, validationError.Error()))
			continue
		}
		matcher.rules = append(matcher.rules, gitignore.ParsePattern(trimmedPattern, nil))
	}
}

// IsIgnored reports whether the path, relative to the tree root, is excluded.
// The last rule matching the path decides; a negated rule re-includes it.
func (matcher *Matcher) IsIgnored(relativePath string, isDirectory bool) bool {
	if matcher == nil || len(matcher.rules) == 0 {
		return false
	}
	pathSegments := splitRelativePath(relativePath)
	if len(pathSegments) == 0 {
		return false
	}
	for ruleIndex := len(matcher.rules) - 1; ruleIndex >= 0; ruleIndex-- {
		switch matcher.rules[ruleIndex].Match(pathSegments, isDirectory) {
		case gitignore.Exclude:
			return true
		case gitignore.Include:
			return false
		}
	}
	return false
}

// RuleCount returns the number of compiled rules.
func (matcher *Matcher) RuleCount() int {
	if matcher == nil {
		return 0
	}
	return len(matcher.rules)
}
