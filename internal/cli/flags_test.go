package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"github.com/temirov/ftree/internal/types"
)

func TestRegisterToggleFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "defaults_to_false", defaultValue: false, arguments: []string{}, expected: false},
		{name: "sets_true_without_value", defaultValue: false, arguments: []string{"--feature"}, expected: true},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--feature=false"}, expected: false},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--feature", "no"}, expected: false},
		{name: "sets_true_with_on_literal", defaultValue: false, arguments: []string{"--feature", "on"}, expected: true},
		{name: "ignores_non_boolean_trailing_value", defaultValue: false, arguments: []string{"--feature", "maybe"}, expected: true},
		{name: "rejects_unknown_literal", defaultValue: false, arguments: []string{"--feature=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "toggle-test"}
			flagValue := !testCase.defaultValue
			registerToggleFlag(command.Flags(), &flagValue, "feature", testCase.defaultValue, "toggle feature behaviour")
			parseErr := command.ParseFlags(normalizeToggleArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestRegisterFormatFlag(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		arguments   []string
		expected    string
		expectError bool
	}{
		{name: "defaults_to_text", arguments: []string{}, expected: types.FormatText},
		{name: "accepts_markdown", arguments: []string{"--format", "markdown"}, expected: types.FormatMarkdown},
		{name: "lowercases_value", arguments: []string{"--format=JSON"}, expected: types.FormatJSON},
		{name: "rejects_xml", arguments: []string{"--format", "xml"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "format-test"}
			var format string
			registerFormatFlag(command.Flags(), &format, formatFlagName, formatFlagDescription)
			parseErr := command.ParseFlags(testCase.arguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if format != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, format)
			}
		})
	}
}

func TestNormalizeToggleArgumentsKeepsPaths(t *testing.T) {
	t.Parallel()

	rootCommand := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "tree"}
	var disabled bool
	registerToggleFlag(child.Flags(), &disabled, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	rootCommand.AddCommand(child)

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "joins_literal",
			arguments: []string{"tree", "--no-gitignore", "yes", "./src"},
			expected:  []string{"tree", "--no-gitignore=yes", "./src"},
		},
		{
			name:      "keeps_path_after_toggle",
			arguments: []string{"tree", "--no-gitignore", "./src"},
			expected:  []string{"tree", "--no-gitignore", "./src"},
		},
		{
			name:      "stops_at_terminator",
			arguments: []string{"tree", "--", "--no-gitignore", "no"},
			expected:  []string{"tree", "--", "--no-gitignore", "no"},
		},
	}
	for _, testCase := range testCases {
		actual := normalizeToggleArguments(rootCommand, testCase.arguments)
		if !reflect.DeepEqual(actual, testCase.expected) {
			t.Fatalf("%s: expected %v, got %v", testCase.name, testCase.expected, actual)
		}
	}
}
