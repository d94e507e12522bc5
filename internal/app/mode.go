package app

import (
	"strings"

	"github.com/bft-labs/consvc/internal/domain"
)

// DebugFlag is the argument, after its '/' or '-' prefix, that selects
// interactive mode.
const DebugFlag = "debug"

// IsDebugFlag reports whether arg is "/debug" or "-debug", ignoring case.
func IsDebugFlag(arg string) bool {
	if len(arg) < 2 || (arg[0] != '/' && arg[0] != '-') {
		return false
	}
	return strings.EqualFold(arg[1:], DebugFlag)
}

// ParseMode selects the execution mode from the startup arguments
// (program name excluded).
func ParseMode(args []string) domain.Mode {
	for _, arg := range args {
		if IsDebugFlag(arg) {
			return domain.ModeInteractive
		}
	}
	return domain.ModeManaged
}

// StripModeFlags returns args without the interactive-mode flag.
func StripModeFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !IsDebugFlag(arg) {
			out = append(out, arg)
		}
	}
	return out
}
