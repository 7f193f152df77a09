package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/ftree/internal/types"
)

const (
	toggleFlagTypeName            = "bool"
	toggleFlagTrueLiteral         = "true"
	toggleFlagAcceptedValues      = "true, false, yes, no, on, off, 1, 0"
	toggleFlagInvalidValueMessage = "invalid boolean value %q for --%s; accepted values: %s"

	formatFlagTypeName            = "format"
	formatFlagAcceptedValues      = types.FormatText + ", " + types.FormatMarkdown + ", " + types.FormatJSON
	formatFlagInvalidValueMessage = "invalid format %q for --%s; accepted values: %s"
)

var toggleFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// toggleFlagValue is a boolean flag that also accepts yes/no and on/off literals,
// either attached with "=" or as the following argument.
type toggleFlagValue struct {
	target *bool
	name   string
}

func (value *toggleFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagTrueLiteral
	}
	parsed, ok := toggleFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf(toggleFlagInvalidValueMessage, input, value.name, toggleFlagAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}

func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, name: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = toggleFlagTrueLiteral
	}
}

// formatFlagValue accepts a rendering format case-insensitively and stores it lowercased.
type formatFlagValue struct {
	target *string
	name   string
}

func (value *formatFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if !types.IsSupportedFormat(normalized) {
		return fmt.Errorf(formatFlagInvalidValueMessage, input, value.name, formatFlagAcceptedValues)
	}
	*value.target = normalized
	return nil
}

func (value *formatFlagValue) String() string {
	if value == nil || value.target == nil {
		return types.FormatText
	}
	return *value.target
}

func (value *formatFlagValue) Type() string {
	return formatFlagTypeName
}

func registerFormatFlag(flagSet *pflag.FlagSet, target *string, name string, usage string) {
	*target = types.FormatText
	flagSet.Var(&formatFlagValue{target: target, name: name}, name, usage)
}

// normalizeToggleArguments joins "--flag value" into "--flag=value" for toggle flags
// whose following argument is a boolean literal, so the literal is not taken as a path.
func normalizeToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectToggleFlagNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(currentArgument, "--")
			nextArgument := arguments[index+1]
			if _, isToggle := toggleNames[flagName]; isToggle {
				if _, isLiteral := toggleFlagLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; isLiteral {
					normalized = append(normalized, currentArgument+"="+nextArgument)
					index++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectToggleFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == toggleFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectToggleFlagNames(child, target)
	}
}
