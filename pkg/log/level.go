package log

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a logging threshold. Lower values are more severe.
type Level int

// Predefined logging levels.
const (
	LevelError       Level = 10
	LevelWarning     Level = 100
	LevelInformation Level = 1000
	LevelDebug       Level = 10000
	LevelVerbose     Level = 100000
)

// String returns the canonical name of the level, or its number.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInformation:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelVerbose:
		return "verbose"
	default:
		return strconv.Itoa(int(l))
	}
}

// ParseLevel accepts a level name or a non-negative integer.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "info", "information":
		return LevelInformation, nil
	case "debug":
		return LevelDebug, nil
	case "verbose", "trace":
		return LevelVerbose, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return Level(n), nil
}
