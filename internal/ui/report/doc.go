// Package report renders validation results for people and for machines.
//
// Text output uses lipgloss styles and falls back to plain ASCII when the
// destination is not a terminal. JSON output is stable and meant for CI.
package report
