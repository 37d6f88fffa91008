// Package tui provides a Bubble Tea progress display for validation runs.
package tui

// FileStartedMsg reports that a request file is being validated.
type FileStartedMsg struct {
	File string
}

// FileDoneMsg reports the outcome of one request file.
type FileDoneMsg struct {
	File   string
	Status Status
	Detail string
}

// TickMsg is sent periodically to advance the spinner.
type TickMsg struct{}

// ErrMsg carries an error that aborts the display.
type ErrMsg struct{ Err error }

// DoneMsg signals that all work is complete.
type DoneMsg struct{}
