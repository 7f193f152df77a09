// Package utils provides helper functions, including version retrieval.
package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	// developmentVersion is reported for builds that carry no release information.
	developmentVersion = "dev"
	develBuildVersion  = "(devel)"
)

// Version is set at link time with -ldflags "-X github.com/temirov/ftree/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion reports the ftree version: the link-time Version, then the module
// version recorded by go install, then git describe of the enclosing checkout, then "dev".
func GetApplicationVersion() string {
	if trimmedVersion := strings.TrimSpace(Version); trimmedVersion != EmptyString {
		return trimmedVersion
	}
	if buildInfo, available := debug.ReadBuildInfo(); available {
		if moduleVersion := buildInfo.Main.Version; moduleVersion != EmptyString && moduleVersion != develBuildVersion {
			return moduleVersion
		}
	}
	if checkoutDirectory, found := FindAncestorContaining(".", GitDirectoryName, true); found {
		for _, describeArguments := range [][]string{
			{"describe", "--tags", "--exact-match"},
			{"describe", "--tags", "--long", "--dirty"},
		} {
			if description := describeCheckout(checkoutDirectory, describeArguments); description != EmptyString {
				return description
			}
		}
	}
	return developmentVersion
}

func describeCheckout(checkoutDirectory string, arguments []string) string {
	// #nosec G204
	describeCommand := exec.Command("git", arguments...)
	describeCommand.Dir = checkoutDirectory
	describeOutput, describeError := describeCommand.Output()
	if describeError != nil {
		return EmptyString
	}
	return strings.TrimSpace(string(describeOutput))
}
