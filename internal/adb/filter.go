package adb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// ErrCommandBlocked marks a refusal by the safety filter, distinct from a
// tool execution failure
var ErrCommandBlocked = errors.New("command blocked")

// MetaCharacters are rejected in any token. Arguments are passed to the
// process directly, never through a shell, so these have no legitimate use
// and only ever appear in injection attempts.
const MetaCharacters = ";|&$`<>(){}'\"\\"

// DeniedSubcommands are bridge tool operations this front-end refuses to
// run: reboot and flash paths can brick or wipe a device from a stray
// terminal entry.
var DeniedSubcommands = []string{
	"reboot",
	"reboot-bootloader",
	"fastboot",
	"recovery",
	"bootloader",
	"root",
	"unroot",
	"usb",
	"disable-verity",
	"sideload",
	"uninstall",
}

// DeniedShellPrefixes block destructive `shell` invocations by their first
// in-shell word
var DeniedShellPrefixes = []string{
	"rm",
	"wipe",
	"dd",
	"mkfs",
	"reboot",
	"svc",
}

// Decision is the structured outcome of evaluating a command line
type Decision struct {
	Allowed bool
	Reason  string // set when not allowed
}

// CommandFilter evaluates user-supplied command lines before any process
// launch
type CommandFilter struct {
	deniedSubcommands   []string
	deniedShellPrefixes []string
}

// NewCommandFilter creates a filter with the default rule set
func NewCommandFilter() *CommandFilter {
	return &CommandFilter{
		deniedSubcommands:   DeniedSubcommands,
		deniedShellPrefixes: DeniedShellPrefixes,
	}
}

// Evaluate splits argsText into tokens and applies the rule set. The
// returned args are only valid when the decision allows execution.
func (f *CommandFilter) Evaluate(argsText string) (Decision, []string, error) {
	trimmed := strings.TrimSpace(argsText)
	if trimmed == "" {
		return Decision{Reason: "empty command"}, nil, nil
	}

	// Reject metacharacters before tokenizing: shlex would otherwise
	// swallow quotes and hide the attempt
	for _, r := range trimmed {
		if strings.ContainsRune(MetaCharacters, r) {
			return Decision{Reason: fmt.Sprintf("shell metacharacter %q not allowed", r)}, nil, nil
		}
	}

	args, err := shlex.Split(trimmed)
	if err != nil {
		return Decision{}, nil, fmt.Errorf("failed to parse command: %w", err)
	}
	if len(args) == 0 {
		return Decision{Reason: "empty command"}, nil, nil
	}

	subcommand := strings.ToLower(args[0])
	for _, denied := range f.deniedSubcommands {
		if subcommand == denied {
			return Decision{Reason: fmt.Sprintf("subcommand %q is disabled", subcommand)}, nil, nil
		}
	}

	if subcommand == "shell" && len(args) > 1 {
		first := strings.ToLower(args[1])
		for _, denied := range f.deniedShellPrefixes {
			if first == denied {
				return Decision{Reason: fmt.Sprintf("shell command %q is disabled", first)}, nil, nil
			}
		}
	}

	return Decision{Allowed: true}, args, nil
}
