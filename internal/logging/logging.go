// Package logging builds the stderr logger shared by zendown commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

var levels = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// ValidLevels returns the accepted level names, most verbose first.
func ValidLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ParseLevel parses a level name. The empty string selects DefaultLevel.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		s = DefaultLevel
	}
	level, ok := levels[s]
	if !ok {
		return 0, fmt.Errorf("invalid log level %q (valid: %s)", s, strings.Join(ValidLevels(), ", "))
	}
	return level, nil
}

// New creates a logger writing to w. verbose forces debug output.
func New(w io.Writer, level string, verbose bool) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: "zendown",
		Level:  lvl,
	}), nil
}
