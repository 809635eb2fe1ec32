// Package output renders livery maps and audit reports for the terminal.
//
// Text output is styled with lipgloss; the color mode decides whether
// styles emit escape sequences. JSON and YAML output are never styled and
// are meant for scripts.
package output
