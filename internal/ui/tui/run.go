package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers progress messages to a running display.
type Sender func(tea.Msg)

// RunValidateTUI shows progress for files while work runs in the background.
// work reports progress through send. The work error is returned once the
// display has closed; quitting early cancels the work's context.
func RunValidateTUI(ctx context.Context, out io.Writer, files []string, work func(ctx context.Context, send Sender) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewValidateModel(files)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out))

	workErr := make(chan error, 1)
	go func() {
		err := work(ctx, p.Send)
		if err != nil {
			p.Send(ErrMsg{Err: err})
		} else {
			p.Send(DoneMsg{})
		}
		workErr <- err
	}()

	finalModel, err := p.Run()
	cancel()
	wErr := <-workErr

	if err != nil && wErr == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if wErr != nil {
		return wErr
	}
	fm := finalModel.(Model)
	return fm.Err
}
