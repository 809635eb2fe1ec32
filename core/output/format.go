package output

import (
	"fmt"
	"strings"
)

// Format specifies the output format.
type Format string

const (
	// FormatText outputs human readable, optionally colored text.
	FormatText Format = "text"

	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the output format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format. An empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}
