package logger

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding: console or json.
	Format string `mapstructure:"format" default:"console"`
	// Color is the color mode for console output: auto, always, never.
	Color string `mapstructure:"color" default:"auto"`
}

// WithVerbosity returns a copy of the config lowered by verbose steps.
// The configured level is never raised.
func (c Config) WithVerbosity(verbose int) Config {
	out := c
	var wanted string
	switch {
	case verbose >= 2:
		wanted = "trace"
	case verbose == 1:
		wanted = "debug"
	default:
		return out
	}

	current, err := ParseLevel(c.Level)
	target, _ := ParseLevel(wanted)
	if err != nil || target < current {
		out.Level = wanted
	}
	return out
}

// ColorMode selects whether console output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode. An empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (expected auto, always or never)", s)
	}
}

// Enabled reports whether output written to f should be colored.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}
